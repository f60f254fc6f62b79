/*
Copyright 2026 the TeamCity API Tests Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package registry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/teamcity-api-tests/apitests/pkg/models"
)

// journalRecord is the value stored against each journaled identity.
type journalRecord struct {
	Session    string    `json:"session"`
	RecordedAt time.Time `json:"recordedAt"`
}

// BoltJournal keeps tracked entities in a bbolt database, one bucket per
// category keyed by identity.
type BoltJournal struct {
	db      *bolt.DB
	session string
}

// OpenBoltJournal opens, or creates, the journal at path.
func OpenBoltJournal(path string) (*BoltJournal, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	return &BoltJournal{
		db:      db,
		session: uuid.NewString(),
	}, nil
}

// Session identifies the process writing to the journal.
func (j *BoltJournal) Session() string {
	return j.session
}

func (j *BoltJournal) Add(entry Entry) error {
	value, err := json.Marshal(&journalRecord{
		Session:    j.session,
		RecordedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return j.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(entry.Category))
		if err != nil {
			return err
		}

		return bucket.Put([]byte(entry.Identity), value)
	})
}

func (j *BoltJournal) Remove(entry Entry) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(entry.Category))
		if bucket == nil {
			return nil
		}

		return bucket.Delete([]byte(entry.Identity))
	})
}

func (j *BoltJournal) Entries() ([]Entry, error) {
	var entries []Entry

	err := j.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, bucket *bolt.Bucket) error {
			category := models.Category(name)

			return bucket.ForEach(func(k, _ []byte) error {
				entries = append(entries, Entry{Category: category, Identity: string(k)})

				return nil
			})
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	return entries, nil
}

func (j *BoltJournal) Close() error {
	return j.db.Close()
}
