package proc

import (
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"
	log "github.com/go-pkgz/lgr"
)

const summariesBucket = "summaries"

// Record of generated summary, keyed by document content hash
type Record struct {
	Filename  string
	Summary   string
	AudioURL  string
	Location  string
	CreatedAt time.Time
}

// BoltDB store
type BoltDB struct {
	DB *bolt.DB
}

// SaveSummary save record to summaries bucket in bolt db
func (b *BoltDB) SaveSummary(key string, record *Record) error {
	return b.DB.Update(func(tx *bolt.Tx) error {
		bucket, e := tx.CreateBucketIfNotExists([]byte(summariesBucket))
		if e != nil {
			return e
		}

		jdata, jerr := json.Marshal(record)
		if jerr != nil {
			return jerr
		}

		log.Printf("[INFO] save summary %s - %s - %d chars", key, record.Filename, len(record.Summary))
		return bucket.Put([]byte(key), jdata)
	})
}

// GetSummary get record by key from store, nil if not cached yet
func (b *BoltDB) GetSummary(key string) (*Record, error) {
	var record *Record
	err := b.DB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(summariesBucket))
		if bucket == nil {
			return nil
		}

		item := bucket.Get([]byte(key))
		if item == nil {
			return nil
		}

		record = &Record{}
		if err := json.Unmarshal(item, record); err != nil {
			log.Printf("[WARN] failed to unmarshal, %v", err)
			record = nil
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// CountSummaries in store
func (b *BoltDB) CountSummaries() (int, error) {
	count := 0
	err := b.DB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(summariesBucket))
		if bucket == nil {
			return nil
		}
		count = bucket.Stats().KeyN
		return nil
	})
	return count, err
}
