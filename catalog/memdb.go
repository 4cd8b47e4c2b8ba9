// Package catalog provides ready-made implementations of the fetch
// capability consumed by datasets.Cache: an in-memory database catalog for
// tests and demos, a JSON-over-HTTP catalog, and an HTML scraper for
// providers that publish their listings as web pages only.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	memdb "github.com/hashicorp/go-memdb"

	"github.com/on-the-ground/timeboard/datasets"
	"github.com/on-the-ground/timeboard/lecture"
)

// ErrUnknownDataset reports a dataset id the catalog does not carry.
var ErrUnknownDataset = errors.New("unknown dataset")

const lectureTable = "lecture"

// lectureRow is the memdb row shape: one lecture indexed by a composite
// primary key and, separately, by the dataset it belongs to.
type lectureRow struct {
	PK        string // "<dataset>/<lecture id>"
	DatasetID string
	Lecture   lecture.Lecture
}

var lectureSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		lectureTable: {
			Name: lectureTable,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "PK"},
				},
				"dataset": {
					Name:    "dataset",
					Indexer: &memdb.StringFieldIndex{Field: "DatasetID"},
				},
			},
		},
	},
}

// MemCatalog serves datasets out of an in-memory database. Latency, when
// set, delays every fetch to make a demo or test behave like a remote
// provider.
type MemCatalog struct {
	db      *memdb.MemDB
	known   map[datasets.ID]struct{}
	Latency time.Duration
}

// NewMemCatalog loads data into a fresh database. An id mapped to an
// empty list is a known, empty dataset, as opposed to an unknown one.
func NewMemCatalog(data map[datasets.ID][]lecture.Lecture) (*MemCatalog, error) {
	db, err := memdb.NewMemDB(lectureSchema)
	if err != nil {
		return nil, err
	}
	known := make(map[datasets.ID]struct{}, len(data))

	txn := db.Txn(true)
	for id, lectures := range data {
		known[id] = struct{}{}
		for _, lec := range lectures {
			row := &lectureRow{
				PK:        fmt.Sprintf("%s/%s", id, lec.ID),
				DatasetID: string(id),
				Lecture:   lec,
			}
			if err := txn.Insert(lectureTable, row); err != nil {
				txn.Abort()
				return nil, err
			}
		}
	}
	txn.Commit()

	return &MemCatalog{db: db, known: known}, nil
}

// FetchDataset snapshots the dataset's lectures through a read
// transaction, in insertion-key order.
func (c *MemCatalog) FetchDataset(ctx context.Context, id datasets.ID) ([]lecture.Lecture, error) {
	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if _, ok := c.known[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, id)
	}

	txn := c.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(lectureTable, "dataset", string(id))
	if err != nil {
		return nil, err
	}
	lectures := []lecture.Lecture{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		lectures = append(lectures, raw.(*lectureRow).Lecture)
	}
	return lectures, nil
}
