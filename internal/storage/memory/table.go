package memory

import (
	"sync/atomic"

	"github.com/hashicorp/go-memdb"
	"github.com/videra/data-server/internal/storage"
)

const (
	tableContent   = "content"
	tableAnalytics = "analytics"
	tableTrends    = "trends"
	tableUsers     = "users"

	indexID     = "id"
	indexSeq    = "seq"
	indexLookup = "lookup"
)

// record wraps a stored value together with its insertion sequence number.
// Lookup carries an optional secondary key (i.e. the signup IP of a user).
type record[T any] struct {
	ID     string
	Seq    uint64
	Lookup string
	Value  T
}

func tableSchema(name string) *memdb.TableSchema {
	return &memdb.TableSchema{
		Name: name,
		Indexes: map[string]*memdb.IndexSchema{
			indexID: {
				Name:         indexID,
				Unique:       true,
				AllowMissing: false,
				Indexer:      &memdb.StringFieldIndex{Field: "ID"},
			},
			indexSeq: {
				Name:         indexSeq,
				Unique:       true,
				AllowMissing: false,
				Indexer:      &memdb.UintFieldIndex{Field: "Seq"},
			},
			indexLookup: {
				Name:         indexLookup,
				Unique:       false,
				AllowMissing: true,
				Indexer:      &memdb.StringFieldIndex{Field: "Lookup"},
			},
		},
	}
}

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableContent:   tableSchema(tableContent),
		tableAnalytics: tableSchema(tableAnalytics),
		tableTrends:    tableSchema(tableTrends),
		tableUsers:     tableSchema(tableUsers),
	},
}

// table provides typed access to a single go-memdb table
type table[T any] struct {
	db   *memdb.MemDB
	name string
	seq  atomic.Uint64
}

func newTable[T any](db *memdb.MemDB, name string) *table[T] {
	return &table[T]{
		db:   db,
		name: name,
	}
}

// all returns every stored value in insertion order
func (tbl *table[T]) all() ([]T, error) {
	txn := tbl.db.Txn(false)
	it, err := txn.Get(tbl.name, indexSeq)
	if err != nil {
		return nil, err
	}
	values := []T{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		values = append(values, obj.(*record[T]).Value)
	}
	return values, nil
}

// get returns the value stored under the given ID
func (tbl *table[T]) get(id string) (T, bool, error) {
	var zero T
	txn := tbl.db.Txn(false)
	obj, err := txn.First(tbl.name, indexID, id)
	if err != nil {
		return zero, false, err
	}
	if obj == nil {
		return zero, false, nil
	}
	return obj.(*record[T]).Value, true, nil
}

// insert stores a new value; it fails with storage.ErrDuplicateID if the ID is taken
func (tbl *table[T]) insert(id, lookup string, value T) error {
	txn := tbl.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(tbl.name, indexID, id)
	if err != nil {
		return err
	}
	if existing != nil {
		return storage.ErrDuplicateID
	}

	if err := txn.Insert(tbl.name, &record[T]{
		ID:     id,
		Seq:    tbl.seq.Add(1),
		Lookup: lookup,
		Value:  value,
	}); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// replace swaps the value stored under the given ID while keeping its position.
// It reports false if no value is stored under the ID.
func (tbl *table[T]) replace(id string, update func(T) T) (T, bool, error) {
	var zero T
	txn := tbl.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(tbl.name, indexID, id)
	if err != nil {
		return zero, false, err
	}
	if obj == nil {
		return zero, false, nil
	}
	old := obj.(*record[T])

	value := update(old.Value)
	if err := txn.Insert(tbl.name, &record[T]{
		ID:     old.ID,
		Seq:    old.Seq,
		Lookup: old.Lookup,
		Value:  value,
	}); err != nil {
		return zero, false, err
	}
	txn.Commit()
	return value, true, nil
}

// delete removes the value stored under the given ID
func (tbl *table[T]) delete(id string) error {
	txn := tbl.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll(tbl.name, indexID, id); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// count counts the values sharing the given secondary key
func (tbl *table[T]) count(lookup string) (int, error) {
	txn := tbl.db.Txn(false)
	it, err := txn.Get(tbl.name, indexLookup, lookup)
	if err != nil {
		return 0, err
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n, nil
}
