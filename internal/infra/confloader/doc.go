// Package confloader loads bucketmap configuration.
//
// It uses koanf to layer configuration sources with priority
// flag > env > file > default, and fsnotify to watch the config file for
// changes during long workload runs.
//
// Environment variables use the prefix BUCKETMAP_ followed by the section
// name and the key: BUCKETMAP_TABLE_BUCKET_COUNT maps to table.bucket_count.
package confloader
