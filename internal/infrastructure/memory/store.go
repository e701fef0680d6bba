// Package memory implementa los repositorios sobre go-memdb.
// Se usa en tests y con DB_DRIVER=memory; los datos se pierden al reiniciar.
package memory

import (
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

const (
	tableMovements = "movements"
	tableProducts  = "products"
	tableLocations = "locations"
	tableUsers     = "users"
)

// movementRecord fila de la tabla de movimientos. Seq va con ceros a la izquierda
// para que el índice de strings ordene por inserción.
type movementRecord struct {
	ID         string
	Seq        string
	ProductSeq string // product_id + "\x00" + Seq
	Movement   entity.Movement
}

func newMovementRecord(seq int64, m *entity.Movement) *movementRecord {
	key := fmt.Sprintf("%020d", seq)
	return &movementRecord{ID: m.ID, Seq: key, ProductSeq: productPrefix(m.ProductID) + key, Movement: *m}
}

func productPrefix(productID string) string { return productID + "\x00" }

func idIndex() *memdb.IndexSchema {
	return &memdb.IndexSchema{Name: "id", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "ID"}}
}

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableMovements: {
			Name: tableMovements,
			Indexes: map[string]*memdb.IndexSchema{
				"id":      idIndex(),
				"seq":     {Name: "seq", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "Seq"}},
				"product": {Name: "product", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "ProductSeq"}},
			},
		},
		tableProducts:  {Name: tableProducts, Indexes: map[string]*memdb.IndexSchema{"id": idIndex()}},
		tableLocations: {Name: tableLocations, Indexes: map[string]*memdb.IndexSchema{"id": idIndex()}},
		tableUsers: {
			Name: tableUsers,
			Indexes: map[string]*memdb.IndexSchema{
				"id":       idIndex(),
				"username": {Name: "username", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "Username"}},
				"email":    {Name: "email", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "Email", Lowercase: true}},
			},
		},
	},
}

// Store base en memoria compartida por los repositorios.
type Store struct {
	db  *memdb.MemDB
	seq int64 // solo se modifica con la transacción de escritura abierta
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		panic(fmt.Sprintf("memory: esquema inválido: %v", err))
	}
	return &Store{db: db}
}

// read ejecuta fn sobre una instantánea de solo lectura.
func (s *Store) read(fn func(txn *memdb.Txn) error) error {
	txn := s.db.Txn(false)
	defer txn.Abort()
	return fn(txn)
}

// write ejecuta fn en una transacción de escritura y confirma solo si fn no falla.
func (s *Store) write(fn func(txn *memdb.Txn) error) error {
	txn := s.db.Txn(true)
	defer txn.Abort()
	if err := fn(txn); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// Helpers genéricos para las tablas de catálogo y usuarios (índice "id").
// Los objetos guardados no se modifican nunca: se insertan y devuelven copias.

func getOne[T any](s *Store, table, index string, arg any) (*T, error) {
	var out *T
	err := s.read(func(txn *memdb.Txn) error {
		raw, err := txn.First(table, index, arg)
		if err != nil {
			return fmt.Errorf("memdb first %s.%s: %w", table, index, err)
		}
		if raw != nil {
			v := *raw.(*T)
			out = &v
		}
		return nil
	})
	return out, err
}

func listAll[T any](s *Store, table string) ([]*T, error) {
	var out []*T
	err := s.read(func(txn *memdb.Txn) error {
		it, err := txn.Get(table, "id")
		if err != nil {
			return fmt.Errorf("memdb get %s: %w", table, err)
		}
		for raw := it.Next(); raw != nil; raw = it.Next() {
			v := *raw.(*T)
			out = append(out, &v)
		}
		return nil
	})
	if out == nil {
		out = []*T{}
	}
	return out, err
}

func countRows(txn *memdb.Txn, table string) (int, error) {
	it, err := txn.Get(table, "id")
	if err != nil {
		return 0, fmt.Errorf("memdb get %s: %w", table, err)
	}
	n := 0
	for raw := it.Next(); raw != nil; raw = it.Next() {
		n++
	}
	return n, nil
}

func count(s *Store, table string) (int, error) {
	var n int
	err := s.read(func(txn *memdb.Txn) error {
		var err error
		n, err = countRows(txn, table)
		return err
	})
	return n, err
}

func create[T any](s *Store, table, id string, v *T) error {
	return s.write(func(txn *memdb.Txn) error {
		existing, err := txn.First(table, "id", id)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		cp := *v
		return txn.Insert(table, &cp)
	})
}

func replace[T any](s *Store, table, id string, v *T) error {
	return s.write(func(txn *memdb.Txn) error {
		existing, err := txn.First(table, "id", id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		cp := *v
		return txn.Insert(table, &cp)
	})
}

func remove(s *Store, table, id string) error {
	return s.write(func(txn *memdb.Txn) error {
		existing, err := txn.First(table, "id", id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return txn.Delete(table, existing)
	})
}
