package game

import (
	"sort"
	"strings"
	"sync"
)

type Registry struct {
	sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: map[string]*Room{}}
}

func (g *Registry) Create(id string) (*Room, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidId
	}
	g.Lock()
	defer g.Unlock()
	if _, ok := g.rooms[id]; ok {
		return nil, ErrAlreadyExists
	}
	room := NewRoom(id)
	g.rooms[id] = room
	return room, nil
}

func (g *Registry) Get(id string) (*Room, bool) {
	g.RLock()
	defer g.RUnlock()
	room, ok := g.rooms[strings.TrimSpace(id)]
	return room, ok
}

// Remove should only be called once the room has no players left
func (g *Registry) Remove(id string) {
	g.Lock()
	delete(g.rooms, id)
	g.Unlock()
}

func (g *Registry) Ids() []string {
	g.RLock()
	defer g.RUnlock()
	ids := []string{}
	for id := range g.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *Registry) Len() int {
	g.RLock()
	defer g.RUnlock()
	return len(g.rooms)
}
