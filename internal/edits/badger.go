package edits

import (
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v3"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
)

// Keys are 'e' | cx | cz | lx | y | lz, with column coordinates stored
// sign-flipped big-endian so a column's edits share a prefix.
const keyPrefix = 'e'

// Badger is a journal backed by a badger key-value store.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens or creates a badger journal in dir. An empty dir opens an
// in-memory store.
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger journal: %w", err)
	}
	return &Badger{db: db}, nil
}

func columnKey(cx, cz int) []byte {
	k := make([]byte, 9, 12)
	k[0] = keyPrefix
	binary.BigEndian.PutUint32(k[1:], uint32(int32(cx))^0x80000000)
	binary.BigEndian.PutUint32(k[5:], uint32(int32(cz))^0x80000000)
	return k
}

func editKey(e Edit) []byte {
	p := e.column()
	return append(columnKey(p.X, p.Z), byte(chunk.Local(e.X)), byte(e.Y), byte(chunk.Local(e.Z)))
}

func (b *Badger) Record(e Edit) error {
	if e.Y < 0 || e.Y >= chunk.Height {
		return fmt.Errorf("edit at y=%d outside the column", e.Y)
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(editKey(e), []byte{byte(e.ID)})
	})
	if err != nil {
		return fmt.Errorf("record edit: %w", err)
	}
	return nil
}

func (b *Badger) Column(cx, cz int) ([]Edit, error) {
	prefix := columnKey(cx, cz)
	var out []Edit

	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			k := item.Key()
			if len(k) != len(prefix)+3 {
				return fmt.Errorf("malformed edit key %x", k)
			}
			e := Edit{
				X: cx*chunk.Width + int(k[9]),
				Y: int(k[10]),
				Z: cz*chunk.Depth + int(k[11]),
			}
			err := item.Value(func(v []byte) error {
				if len(v) != 1 {
					return fmt.Errorf("malformed edit value for key %x", k)
				}
				e.ID = block.ID(v[0])
				return nil
			})
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read column %d,%d: %w", cx, cz, err)
	}
	sortEdits(out)
	return out, nil
}

func (b *Badger) Close() error {
	return b.db.Close()
}
