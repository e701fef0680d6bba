package inventory

import (
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Catalog resuelve nombres visibles de productos y ubicaciones.
type Catalog interface {
	ProductName(id string) (string, bool)
	LocationName(id string) (string, bool)
}

type mapCatalog struct {
	products  map[string]string
	locations map[string]string
}

// NewCatalog construye un Catalog a partir de las listas del catálogo.
func NewCatalog(products []*entity.Product, locations []*entity.Location) Catalog {
	c := &mapCatalog{
		products:  make(map[string]string, len(products)),
		locations: make(map[string]string, len(locations)),
	}
	for _, p := range products {
		c.products[p.ID] = p.Name
	}
	for _, l := range locations {
		c.locations[l.ID] = l.Name
	}
	return c
}

func (c *mapCatalog) ProductName(id string) (string, bool) {
	n, ok := c.products[id]
	return n, ok
}

func (c *mapCatalog) LocationName(id string) (string, bool) {
	n, ok := c.locations[id]
	return n, ok
}

// DanglingReference es un saldo positivo cuyo producto o ubicación ya no existe en el catálogo.
type DanglingReference struct {
	ProductID       string
	LocationID      string
	Quantity        int64
	MissingProduct  bool
	MissingLocation bool
}

// Present convierte los saldos en filas con nombres resueltos, ordenadas por producto y ubicación.
// Las claves que no resuelven se omiten de las filas y se devuelven como DanglingReference.
func Present(balances map[StockKey]int64, catalog Catalog) ([]entity.Balance, []DanglingReference) {
	keys := make([]StockKey, 0, len(balances))
	for k, q := range balances {
		if q > 0 {
			keys = append(keys, k)
		}
	}
	sortKeys(keys)

	rows := make([]entity.Balance, 0, len(keys))
	var dangling []DanglingReference
	for _, k := range keys {
		pName, pOK := catalog.ProductName(k.ProductID)
		lName, lOK := catalog.LocationName(k.LocationID)
		if !pOK || !lOK {
			dangling = append(dangling, DanglingReference{
				ProductID:       k.ProductID,
				LocationID:      k.LocationID,
				Quantity:        balances[k],
				MissingProduct:  !pOK,
				MissingLocation: !lOK,
			})
			continue
		}
		rows = append(rows, entity.Balance{
			ProductID:    k.ProductID,
			ProductName:  pName,
			LocationID:   k.LocationID,
			LocationName: lName,
			Quantity:     balances[k],
		})
	}
	return rows, dangling
}

func sortKeys(keys []StockKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ProductID != keys[j].ProductID {
			return keys[i].ProductID < keys[j].ProductID
		}
		return keys[i].LocationID < keys[j].LocationID
	})
}
