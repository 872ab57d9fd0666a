package database

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/btree"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fulldump/chainkv/events"
	"github.com/fulldump/chainkv/hashindex"
	"github.com/fulldump/chainkv/orderedstore"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var (
	ErrInvalidName        = errors.New("invalid name")
	ErrIndexAlreadyExists = errors.New("index already exists")
	ErrIndexNotFound      = errors.New("index not found")
	ErrMapAlreadyExists   = errors.New("map already exists")
	ErrMapNotFound        = errors.New("map not found")
	ErrClosing            = errors.New("database is closing")
)

type Config struct {
	Buckets    int // used when an index is created without explicit buckets
	MaxEntries int
	Logger     *zerolog.Logger // nil discards
}

type Index struct {
	Name      string
	Id        string
	CreatedAt time.Time
	*hashindex.HashIndex
}

type Map struct {
	Name      string
	Id        string
	CreatedAt time.Time
	*orderedstore.Store
}

type Database struct {
	config  *Config
	status  string
	mutex   *sync.RWMutex
	indexes *btree.BTreeG[*Index]
	maps    *btree.BTreeG[*Map]
	exit    chan struct{}
	stop    sync.Once
}

func NewDatabase(config *Config) *Database { // todo: return error?
	if config.Logger == nil {
		nop := zerolog.Nop()
		config.Logger = &nop
	}
	s := &Database{
		config: config,
		status: StatusOpening,
		mutex:  &sync.RWMutex{},
		indexes: btree.NewG(32, func(a, b *Index) bool {
			return a.Name < b.Name
		}),
		maps: btree.NewG(32, func(a, b *Map) bool {
			return a.Name < b.Name
		}),
		exit: make(chan struct{}),
	}

	return s
}

func (db *Database) GetStatus() string {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return db.status
}

func (db *Database) setStatus(status string) {
	db.mutex.Lock()
	db.status = status
	db.mutex.Unlock()
}

func validName(name string) bool {
	return strings.TrimSpace(name) != "" && !strings.ContainsAny(name, "/:")
}

func (db *Database) observer(name string) events.Observer {
	return events.Log(db.config.Logger.With().Str("store", name).Logger())
}

// CreateIndex registers a new hash index, buckets <= 0 takes the configured default
func (db *Database) CreateIndex(name string, buckets int) (*Index, error) {

	if !validName(name) {
		return nil, fmt.Errorf("index '%s': %w", name, ErrInvalidName)
	}

	if buckets <= 0 {
		buckets = db.config.Buckets
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if db.status == StatusClosing {
		return nil, ErrClosing
	}

	if db.indexes.Has(&Index{Name: name}) {
		return nil, ErrIndexAlreadyExists
	}

	index := &Index{
		Name:      name,
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		HashIndex: hashindex.New(&hashindex.HashIndexOptions{
			Name:       name,
			Buckets:    buckets,
			MaxEntries: db.config.MaxEntries,
			Observer:   db.observer(name),
		}),
	}
	db.indexes.ReplaceOrInsert(index)

	db.config.Logger.Info().Str("index", name).Int("buckets", index.Buckets()).Msg("index created")

	return index, nil
}

func (db *Database) GetIndex(name string) (*Index, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	index, found := db.indexes.Get(&Index{Name: name})
	if !found {
		return nil, ErrIndexNotFound
	}
	return index, nil
}

// ListIndexes returns the indexes sorted by name
func (db *Database) ListIndexes() []*Index {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	result := make([]*Index, 0, db.indexes.Len())
	db.indexes.Ascend(func(index *Index) bool {
		result = append(result, index)
		return true
	})
	return result
}

func (db *Database) DropIndex(name string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	index, found := db.indexes.Delete(&Index{Name: name})
	if !found {
		return ErrIndexNotFound
	}
	index.Clear()

	db.config.Logger.Info().Str("index", name).Msg("index dropped")

	return nil
}

func (db *Database) CreateMap(name string) (*Map, error) {

	if !validName(name) {
		return nil, fmt.Errorf("map '%s': %w", name, ErrInvalidName)
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if db.status == StatusClosing {
		return nil, ErrClosing
	}

	if db.maps.Has(&Map{Name: name}) {
		return nil, ErrMapAlreadyExists
	}

	m := &Map{
		Name:      name,
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		Store: orderedstore.New(&orderedstore.StoreOptions{
			Name:       name,
			MaxEntries: db.config.MaxEntries,
			Observer:   db.observer(name),
		}),
	}
	db.maps.ReplaceOrInsert(m)

	db.config.Logger.Info().Str("map", name).Msg("map created")

	return m, nil
}

func (db *Database) GetMap(name string) (*Map, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	m, found := db.maps.Get(&Map{Name: name})
	if !found {
		return nil, ErrMapNotFound
	}
	return m, nil
}

// ListMaps returns the maps sorted by name
func (db *Database) ListMaps() []*Map {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	result := make([]*Map, 0, db.maps.Len())
	db.maps.Ascend(func(m *Map) bool {
		result = append(result, m)
		return true
	})
	return result
}

func (db *Database) DropMap(name string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	m, found := db.maps.Delete(&Map{Name: name})
	if !found {
		return ErrMapNotFound
	}
	m.Free()

	db.config.Logger.Info().Str("map", name).Msg("map dropped")

	return nil
}

func (db *Database) Load() error {
	db.config.Logger.Info().Msg("database ready")
	db.setStatus(StatusOperating)
	return nil
}

func (db *Database) Start() error {

	go db.Load()

	<-db.exit

	return nil
}

// MarkClosing stops the registry from accepting new stores. Once it returns,
// ListIndexes and ListMaps hold every store Stop will release.
func (db *Database) MarkClosing() {
	db.setStatus(StatusClosing)
}

// Stop releases every store, the database is not usable afterwards. Stores are
// released without their owners' locks, callers sharing them between
// goroutines must hold those locks (see service.Stop).
func (db *Database) Stop() error {

	defer db.stop.Do(func() { close(db.exit) })

	db.mutex.Lock()
	defer db.mutex.Unlock()

	db.status = StatusClosing

	db.indexes.Ascend(func(index *Index) bool {
		db.config.Logger.Info().Str("index", index.Name).Int("entries", index.Len()).Msg("releasing index")
		index.Clear()
		return true
	})
	db.indexes.Clear(false)

	db.maps.Ascend(func(m *Map) bool {
		db.config.Logger.Info().Str("map", m.Name).Int("entries", m.Size()).Msg("releasing map")
		m.Free()
		return true
	})
	db.maps.Clear(false)

	return nil
}
