package service

import (
	"errors"

	"github.com/fulldump/chainkv/hashindex"
	"github.com/fulldump/chainkv/orderedstore"
)

var (
	ErrInvalidKey          = errors.New("key must not be empty")
	ErrIteratorNotFound    = errors.New("iterator not found")
	ErrIteratorInvalidated = errors.New("iterator invalidated")
)

type Servicer interface { // todo: split index and map servicers?
	CreateIndex(name string, buckets int) (*IndexInfo, error)
	GetIndex(name string) (*IndexInfo, error)
	ListIndexes() []*IndexInfo
	DropIndex(name string) error
	Install(index, name, definition string) (*Installed, error)
	Lookup(index, name string) (*hashindex.Triple, error) // nil when missing
	ClearIndex(index string) (int, error)
	Enumerate(index string, f func(t hashindex.Triple) bool) error

	CreateMap(name string) (*MapInfo, error)
	GetMap(name string) (*MapInfo, error)
	ListMaps() []*MapInfo
	DropMap(name string) error
	Put(m, key string, value int) error
	Get(m, key string, def int) (value int, found bool, err error)
	Size(m string) (int, error)
	Dump(m string, reverse bool, f func(e orderedstore.Entry) bool) error

	OpenIterator(m string, reverse bool) (string, error)
	Advance(id string, limit int) (entries []orderedstore.Entry, exhausted bool, err error)
	CloseIterator(id string) error

	Status() string
}

type IndexInfo struct {
	Name    string          `json:"name"`
	Id      string          `json:"id"`
	Buckets int             `json:"buckets"`
	Entries int             `json:"entries"`
	Stats   hashindex.Stats `json:"stats"`
}

type MapInfo struct {
	Name string `json:"name"`
	Id   string `json:"id"`
	Size int    `json:"size"`
}

type Installed struct {
	hashindex.Triple
	Replaced bool `json:"replaced"`
}

var _ Servicer = (*Service)(nil)
