package htable

// Op names a table operation for observers.
type Op string

// Table operations.
const (
	OpInsert      Op = "insert"
	OpEmplace     Op = "emplace"
	OpErase       Op = "erase"
	OpLookup      Op = "lookup"
	OpGetOrInsert Op = "get_or_insert"
	OpAt          Op = "at"
	OpAccess      Op = "access"
	OpCompute     Op = "compute"
	OpClear       Op = "clear"
)

// Observer receives a callback after each table operation completes.
//
// bucket is the routed bucket index, or -1 for whole-table operations.
// hit reports whether the key was present when the operation ran.
// Observers are called outside the bucket lock but may be called from many
// goroutines at once.
type Observer interface {
	ObserveOp(op Op, bucket int, hit bool)
}

type nopObserver struct{}

func (nopObserver) ObserveOp(Op, int, bool) {}
