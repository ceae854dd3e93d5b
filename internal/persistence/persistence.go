package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/ecfan/internal/controller"
	"github.com/markusressel/ecfan/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	// BucketDecisions contains one nested bucket per fan, keyed by decision time
	BucketDecisions = "decisions"
)

type Persistence interface {
	Init() error

	SaveDecisions(decisions []controller.ControlDecision, maxEntries int) error
	LoadDecisions(fanId string) ([]controller.ControlDecision, error)
	DeleteDecisions(fanId string) error
	FanIds() ([]string, error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func timeKey(t time.Time) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(t.UnixNano()))
	return key
}

// SaveDecisions appends the given decisions to the history of their fans,
// only the newest maxEntries decisions per fan are kept
func (p persistence) SaveDecisions(decisions []controller.ControlDecision, maxEntries int) (err error) {
	if len(decisions) <= 0 {
		return nil
	}

	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists([]byte(BucketDecisions))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}

		for _, decision := range decisions {
			b, err := root.CreateBucketIfNotExists([]byte(decision.Fan))
			if err != nil {
				return fmt.Errorf("create bucket: %s", err)
			}
			data, err := json.Marshal(decision)
			if err != nil {
				return err
			}
			err = b.Put(timeKey(decision.Time), data)
			if err != nil {
				return err
			}
			if maxEntries > 0 {
				err = trimBucket(b, maxEntries)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func trimBucket(b *bolt.Bucket, maxEntries int) error {
	count := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		count++
	}

	var obsolete [][]byte
	for k, _ := c.First(); k != nil && count > maxEntries; k, _ = c.Next() {
		key := make([]byte, len(k))
		copy(key, k)
		obsolete = append(obsolete, key)
		count--
	}
	for _, key := range obsolete {
		err := b.Delete(key)
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadDecisions loads the decision history of the given fan, oldest first
func (p persistence) LoadDecisions(fanId string) ([]controller.ControlDecision, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []controller.ControlDecision
	err = db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(BucketDecisions))
		if root == nil {
			return os.ErrNotExist
		}
		b := root.Bucket([]byte(fanId))
		if b == nil {
			return os.ErrNotExist
		}

		return b.ForEach(func(k, v []byte) error {
			var decision controller.ControlDecision
			err := json.Unmarshal(v, &decision)
			if err != nil {
				// skip entries we cannot read
				ui.Warning("Unable to unmarshal saved decision of %s: %v", fanId, err)
				return nil
			}
			result = append(result, decision)
			return nil
		})
	})

	return result, err
}

func (p persistence) DeleteDecisions(fanId string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(BucketDecisions))
		if root == nil {
			// no decisions yet
			return nil
		}
		if root.Bucket([]byte(fanId)) == nil {
			// no data for given fan
			return nil
		}
		return root.DeleteBucket([]byte(fanId))
	})
}

// FanIds returns the ids of all fans with a decision history
func (p persistence) FanIds() ([]string, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []string
	err = db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(BucketDecisions))
		if root == nil {
			return nil
		}
		return root.ForEach(func(k, v []byte) error {
			// nested buckets have a nil value
			if v == nil {
				result = append(result, string(k))
			}
			return nil
		})
	})
	return result, err
}
