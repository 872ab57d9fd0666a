package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fulldump/chainkv/database"
	"github.com/fulldump/chainkv/hashindex"
	"github.com/fulldump/chainkv/orderedstore"
)

// Service is the concurrent surface over the single-caller stores: every
// store access goes through the mutex bound to that store id.
type Service struct {
	db        *database.Database
	logger    zerolog.Logger
	locks     sync.Map // store id -> *sync.Mutex
	iterators map[string]*session
	mutex     sync.Mutex // protects iterators
}

type session struct {
	mapName string
	mapId   string
	it      *orderedstore.Iterator
}

func NewService(db *database.Database, logger zerolog.Logger) *Service {
	return &Service{
		db:        db,
		logger:    logger,
		iterators: map[string]*session{},
	}
}

func (s *Service) lock(id string) func() {
	m, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mutex := m.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}

// lockIndex returns the index with its lock held. An index dropped while
// waiting for the lock is reported as not found.
func (s *Service) lockIndex(name string) (*database.Index, func(), error) {
	index, err := s.db.GetIndex(name)
	if err != nil {
		return nil, nil, err
	}
	unlock := s.lock(index.Id)
	if current, err := s.db.GetIndex(name); err != nil || current.Id != index.Id {
		unlock()
		return nil, nil, database.ErrIndexNotFound
	}
	return index, unlock, nil
}

// lockMap is lockIndex for maps
func (s *Service) lockMap(name string) (*database.Map, func(), error) {
	m, err := s.db.GetMap(name)
	if err != nil {
		return nil, nil, err
	}
	unlock := s.lock(m.Id)
	if !s.mapRegistered(m.Name, m.Id) {
		unlock()
		return nil, nil, database.ErrMapNotFound
	}
	return m, unlock, nil
}

func (s *Service) mapRegistered(name, id string) bool {
	current, err := s.db.GetMap(name)
	return err == nil && current.Id == id
}

func (s *Service) Status() string {
	return s.db.GetStatus()
}

// Stop releases every store while holding its lock, so no call is inside a
// store when it is freed. Calls waiting for a lock get not found afterwards.
func (s *Service) Stop() error {

	s.db.MarkClosing()

	unlocks := []func(){}
	defer func() {
		for _, unlock := range unlocks {
			unlock()
		}
	}()

	for _, index := range s.db.ListIndexes() {
		unlocks = append(unlocks, s.lock(index.Id))
	}
	for _, m := range s.db.ListMaps() {
		unlocks = append(unlocks, s.lock(m.Id))
	}

	return s.db.Stop()
}

func indexInfo(index *database.Index) *IndexInfo {
	return &IndexInfo{
		Name:    index.Name,
		Id:      index.Id,
		Buckets: index.Buckets(),
		Entries: index.Len(),
		Stats:   index.Stats(),
	}
}

func (s *Service) CreateIndex(name string, buckets int) (*IndexInfo, error) {
	index, err := s.db.CreateIndex(name, buckets)
	if err != nil {
		return nil, err
	}
	return indexInfo(index), nil
}

func (s *Service) GetIndex(name string) (*IndexInfo, error) {
	index, unlock, err := s.lockIndex(name)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return indexInfo(index), nil
}

func (s *Service) ListIndexes() []*IndexInfo {
	result := []*IndexInfo{}
	for _, listed := range s.db.ListIndexes() {
		index, unlock, err := s.lockIndex(listed.Name)
		if err != nil {
			continue // dropped meanwhile
		}
		result = append(result, indexInfo(index))
		unlock()
	}
	return result
}

func (s *Service) DropIndex(name string) error {
	index, unlock, err := s.lockIndex(name)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.db.DropIndex(name)
	s.locks.Delete(index.Id)
	return err
}

func (s *Service) Install(indexName, name, definition string) (*Installed, error) {
	if name == "" {
		return nil, ErrInvalidKey
	}

	index, unlock, err := s.lockIndex(indexName)
	if err != nil {
		return nil, err
	}
	defer unlock()

	replaced := index.Lookup(name) != nil
	entry, err := index.Install(name, definition)
	if err != nil {
		return nil, err
	}

	return &Installed{
		Triple: hashindex.Triple{
			Bucket:     index.Hash(entry.Name()),
			Name:       entry.Name(),
			Definition: entry.Definition(),
		},
		Replaced: replaced,
	}, nil
}

func (s *Service) Lookup(indexName, name string) (*hashindex.Triple, error) {
	index, unlock, err := s.lockIndex(indexName)
	if err != nil {
		return nil, err
	}
	defer unlock()

	entry := index.Lookup(name)
	if entry == nil {
		return nil, nil
	}
	return &hashindex.Triple{
		Bucket:     index.Hash(name),
		Name:       entry.Name(),
		Definition: entry.Definition(),
	}, nil
}

// ClearIndex returns how many entries were released
func (s *Service) ClearIndex(indexName string) (int, error) {
	index, unlock, err := s.lockIndex(indexName)
	if err != nil {
		return 0, err
	}
	defer unlock()

	n := index.Len()
	index.Clear()
	return n, nil
}

// Enumerate holds the index lock while f runs, f must not call back into the service
func (s *Service) Enumerate(indexName string, f func(t hashindex.Triple) bool) error {
	index, unlock, err := s.lockIndex(indexName)
	if err != nil {
		return err
	}
	defer unlock()

	index.Traverse(func(bucket int, e *hashindex.Entry) bool {
		return f(hashindex.Triple{
			Bucket:     bucket,
			Name:       e.Name(),
			Definition: e.Definition(),
		})
	})
	return nil
}

func mapInfo(m *database.Map) *MapInfo {
	return &MapInfo{
		Name: m.Name,
		Id:   m.Id,
		Size: m.Size(),
	}
}

func (s *Service) CreateMap(name string) (*MapInfo, error) {
	m, err := s.db.CreateMap(name)
	if err != nil {
		return nil, err
	}
	return mapInfo(m), nil
}

func (s *Service) GetMap(name string) (*MapInfo, error) {
	m, unlock, err := s.lockMap(name)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return mapInfo(m), nil
}

func (s *Service) ListMaps() []*MapInfo {
	result := []*MapInfo{}
	for _, listed := range s.db.ListMaps() {
		m, unlock, err := s.lockMap(listed.Name)
		if err != nil {
			continue // dropped meanwhile
		}
		result = append(result, mapInfo(m))
		unlock()
	}
	return result
}

// DropMap frees the map. Open sessions stay registered: their next advance
// reports the invalidation and releases them.
func (s *Service) DropMap(name string) error {
	m, unlock, err := s.lockMap(name)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.db.DropMap(name)
	s.locks.Delete(m.Id)
	return err
}

func (s *Service) Put(mapName, key string, value int) error {
	if key == "" {
		return ErrInvalidKey
	}

	m, unlock, err := s.lockMap(mapName)
	if err != nil {
		return err
	}
	defer unlock()

	return m.Put(key, value)
}

func (s *Service) Get(mapName, key string, def int) (int, bool, error) {
	m, unlock, err := s.lockMap(mapName)
	if err != nil {
		return def, false, err
	}
	defer unlock()

	value, found := m.Lookup(key)
	if !found {
		return m.Get(key, def), false, nil
	}
	return value, true, nil
}

func (s *Service) Size(mapName string) (int, error) {
	m, unlock, err := s.lockMap(mapName)
	if err != nil {
		return 0, err
	}
	defer unlock()

	return m.Size(), nil
}

// Dump holds the map lock while f runs, f must not call back into the service
func (s *Service) Dump(mapName string, reverse bool, f func(e orderedstore.Entry) bool) error {
	m, unlock, err := s.lockMap(mapName)
	if err != nil {
		return err
	}
	defer unlock()

	it := m.Iterator()
	if reverse {
		it = m.IteratorReverse()
	}
	for {
		e, ok := it.Next()
		if !ok || !f(e) {
			return nil
		}
	}
}

func (s *Service) OpenIterator(mapName string, reverse bool) (string, error) {
	m, unlock, err := s.lockMap(mapName)
	if err != nil {
		return "", err
	}
	it := m.Iterator()
	if reverse {
		it = m.IteratorReverse()
	}
	unlock()

	id := uuid.New().String()

	s.mutex.Lock()
	s.iterators[id] = &session{
		mapName: m.Name,
		mapId:   m.Id,
		it:      it,
	}
	s.mutex.Unlock()

	s.logger.Debug().Str("iterator", id).Str("map", m.Name).Bool("reverse", reverse).Msg("iterator opened")

	return id, nil
}

func (s *Service) invalidate(id string, session *session, cause error) error {
	s.mutex.Lock()
	delete(s.iterators, id)
	s.mutex.Unlock()

	s.logger.Debug().Str("iterator", id).Str("map", session.mapName).Msg("iterator invalidated")

	return fmt.Errorf("%w: %s", ErrIteratorInvalidated, cause.Error())
}

// Advance yields up to limit entries (limit <= 0 means 1). Exhausted iterators
// keep answering with no entries until they are closed.
func (s *Service) Advance(id string, limit int) ([]orderedstore.Entry, bool, error) {
	s.mutex.Lock()
	session, exists := s.iterators[id]
	s.mutex.Unlock()
	if !exists {
		return nil, false, ErrIteratorNotFound
	}

	if limit <= 0 {
		limit = 1
	}

	defer s.lock(session.mapId)()

	// a dropped map may have handed its lock entry to a new mutex, so the
	// cursor is only touched while the map is still registered
	if !s.mapRegistered(session.mapName, session.mapId) {
		return []orderedstore.Entry{}, true, s.invalidate(id, session, orderedstore.ErrInvalidated)
	}

	entries := []orderedstore.Entry{}
	for len(entries) < limit {
		e, ok := session.it.Next()
		if !ok {
			if err := session.it.Err(); err != nil {
				return entries, true, s.invalidate(id, session, err)
			}
			return entries, true, nil
		}
		entries = append(entries, e)
	}

	return entries, false, nil
}

func (s *Service) CloseIterator(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.iterators[id]; !exists {
		return ErrIteratorNotFound
	}
	delete(s.iterators, id)

	s.logger.Debug().Str("iterator", id).Msg("iterator closed")

	return nil
}
