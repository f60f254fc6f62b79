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

// Package registry tracks every entity a test session creates through the
// API so they can all be deleted at teardown, whichever test created them and
// whether or not it passed.
package registry

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/spjmurray/go-util/pkg/set"
	"golang.org/x/sync/errgroup"

	"github.com/teamcity-api-tests/apitests/pkg/auth"
	"github.com/teamcity-api-tests/apitests/pkg/models"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultRetries     = 1
	DefaultParallelism = 4
)

// State is the lifecycle state of a registry.
type State int32

const (
	// Active registries accumulate created entities.
	Active State = iota
	// Draining registries are deleting everything they track.
	Draining
)

func (s State) String() string {
	if s == Draining {
		return "draining"
	}

	return "active"
}

// Entry is a single tracked entity.
type Entry struct {
	Category models.Category
	Identity string
}

// Report summarises a drain.
type Report struct {
	Deleted []Entry
	Failed  []*DeletionError
}

// Registry maps resource categories to the identities created in them.
// It is constructed once per process and handed to the session orchestration.
type Registry struct {
	lock        sync.Mutex
	state       atomic.Int32
	client      Client
	schema      *models.Schema
	log         logr.Logger
	journal     Journal
	timeout     time.Duration
	retries     int
	parallelism int
	entities    map[models.Category]set.Set[string]
}

// Option configures a Registry.
type Option func(r *Registry)

// WithLogger sets the logger deletions are reported to.
func WithLogger(log logr.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithSchema sets the schema used to resolve entity identities.
func WithSchema(schema *models.Schema) Option {
	return func(r *Registry) {
		r.schema = schema
	}
}

// WithJournal persists tracked entities.
func WithJournal(journal Journal) Option {
	return func(r *Registry) {
		r.journal = journal
	}
}

// WithTimeout bounds each individual deletion attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Registry) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithRetries sets how many times a failed deletion is retried.
func WithRetries(retries int) Option {
	return func(r *Registry) {
		if retries >= 0 {
			r.retries = retries
		}
	}
}

// WithParallelism bounds the concurrent deletions within a category.
func WithParallelism(parallelism int) Option {
	return func(r *Registry) {
		if parallelism > 0 {
			r.parallelism = parallelism
		}
	}
}

// New returns an empty, active registry.
func New(client Client, options ...Option) *Registry {
	r := &Registry{
		client:      client,
		schema:      models.DefaultSchema(),
		log:         logr.Discard(),
		timeout:     DefaultTimeout,
		retries:     DefaultRetries,
		parallelism: DefaultParallelism,
		entities:    map[models.Category]set.Set[string]{},
	}

	for _, o := range options {
		o(r)
	}

	return r
}

// State returns the current lifecycle state.
func (r *Registry) State() State {
	return State(r.state.Load())
}

// Record tracks an entity.  Recording the same entity twice tracks it once
// and an empty identity is ignored.
func (r *Registry) Record(category models.Category, identity string) {
	if identity == "" {
		return
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	r.record(Entry{Category: category, Identity: identity})
}

func (r *Registry) record(entry Entry) {
	identities, ok := r.entities[entry.Category]
	if !ok {
		identities = set.New[string]()
		r.entities[entry.Category] = identities
	}

	if identities.Contains(entry.Identity) {
		return
	}

	identities.Add(entry.Identity)

	if r.journal != nil {
		if err := r.journal.Add(entry); err != nil {
			r.log.Error(err, "failed to journal tracked entity", "category", entry.Category, "identity", entry.Identity)
		}
	}
}

// RecordEntity tracks a created model by its id, or its locator when it has
// no id.  A model with neither is a caller bug.
func (r *Registry) RecordEntity(category models.Category, m models.Model) error {
	identity, ok := r.schema.Identity(m)
	if !ok {
		err := &IdentityResolutionError{Category: category}
		if m != nil {
			err.Kind = m.Kind()
		}

		return err
	}

	r.Record(category, identity)

	return nil
}

// Len returns the number of tracked entities.
func (r *Registry) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	var n int

	for _, identities := range r.entities {
		n += identities.Len()
	}

	return n
}

// Tracked returns every tracked entity in deletion order.
func (r *Registry) Tracked() []Entry {
	r.lock.Lock()
	defer r.lock.Unlock()

	var entries []Entry

	for _, category := range r.categories() {
		entries = append(entries, r.entriesOf(category)...)
	}

	return entries
}

// deletionRank orders categories so dependents go before their owners.
var deletionRank = map[models.Category]int{ //nolint:gochecknoglobals
	models.BuildTypes: 0,
	models.Projects:   1,
	models.Users:      2,
}

func (r *Registry) categories() []models.Category {
	categories := make([]models.Category, 0, len(r.entities))

	for category := range r.entities {
		categories = append(categories, category)
	}

	rank := func(c models.Category) int {
		if n, ok := deletionRank[c]; ok {
			return n
		}

		return len(deletionRank)
	}

	slices.SortFunc(categories, func(a, b models.Category) int {
		return cmp.Or(cmp.Compare(rank(a), rank(b)), cmp.Compare(a, b))
	})

	return categories
}

func (r *Registry) entriesOf(category models.Category) []Entry {
	identities := r.entities[category]

	entries := make([]Entry, 0, identities.Len())

	for identity := range identities.AllSortedFunc(cmp.Compare[string]) {
		entries = append(entries, Entry{Category: category, Identity: identity})
	}

	return entries
}

// DeleteAll deletes every tracked entity with super user privileges and
// empties the registry.  Individual failures are logged and reported, they
// never stop the remaining deletions.
func (r *Registry) DeleteAll(ctx context.Context) *Report {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.state.Store(int32(Draining))
	defer r.state.Store(int32(Active))

	report := &Report{}

	var reportLock sync.Mutex

	for _, category := range r.categories() {
		var group errgroup.Group

		group.SetLimit(r.parallelism)

		for _, entry := range r.entriesOf(category) {
			group.Go(func() error {
				err := r.delete(ctx, entry)

				reportLock.Lock()
				defer reportLock.Unlock()

				if err != nil {
					report.Failed = append(report.Failed, err)
					return nil
				}

				r.entities[entry.Category].Delete(entry.Identity)
				report.Deleted = append(report.Deleted, entry)

				return nil
			})
		}

		// Workers never return errors, failures are collected in the report.
		_ = group.Wait()
	}

	// Failed deletions are dropped too, the journal keeps them.
	for _, identities := range r.entities {
		identities.Clear()
	}

	clear(r.entities)

	r.log.Info("tracked entities cleaned up", "deleted", len(report.Deleted), "failed", len(report.Failed))

	return report
}

func (r *Registry) delete(ctx context.Context, entry Entry) *DeletionError {
	var err error

	for attempt := 0; attempt <= r.retries; attempt++ {
		if err = r.deleteOnce(ctx, entry); err == nil {
			break
		}

		r.log.V(1).Info("deletion attempt failed", "category", entry.Category, "identity", entry.Identity, "attempt", attempt+1, "error", err.Error())
	}

	if err != nil {
		deletionErr := &DeletionError{Entry: entry, Err: err}

		r.log.Error(err, "failed to delete tracked entity", "category", entry.Category, "identity", entry.Identity)

		return deletionErr
	}

	r.log.V(1).Info("deleted tracked entity", "category", entry.Category, "identity", entry.Identity)

	if r.journal != nil {
		if err := r.journal.Remove(entry); err != nil {
			r.log.Error(err, "failed to remove entity from journal", "category", entry.Category, "identity", entry.Identity)
		}
	}

	return nil
}

func (r *Registry) deleteOnce(ctx context.Context, entry Entry) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.client.Delete(ctx, auth.SuperUser, entry.Category, entry.Identity)
}

// Restore tracks every entity left in the journal by earlier sessions.
func (r *Registry) Restore() (int, error) {
	if r.journal == nil {
		return 0, nil
	}

	entries, err := r.journal.Entries()
	if err != nil {
		return 0, err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	for _, entry := range entries {
		if entry.Identity != "" {
			r.record(entry)
		}
	}

	return len(entries), nil
}
