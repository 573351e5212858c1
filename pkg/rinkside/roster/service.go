package roster

import (
	"sync"
	"time"

	"github.com/rinkside/rinkside/pkg/rinkside/models"
)

// Service holds the default player roster used to seed new scoreboards. The
// list is memory-only and lives for the process lifetime; durable copies are
// written by clients through their SAS URLs, not by this store. One mutex
// guards the list and no operation blocks while holding it.
type Service struct {
	mu      sync.Mutex
	players []models.Player
}

// NewService creates a roster service seeded with the stock player list.
func NewService() *Service {
	return &Service{players: initialPlayers()}
}

// Players returns a copy of the roster; mutating it does not touch the store.
func (s *Service) Players() []models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Player(nil), s.players...)
}

// Save replaces the entire roster. Full overwrite, not a merge.
func (s *Service) Save(players []models.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = append([]models.Player(nil), players...)
}

// Add appends a new active player with zero points. IDs are Unix millisecond
// timestamps; two adds within the same millisecond would collide, which is
// accepted at the call rates this sees.
func (s *Service) Add(name, team string) models.Player {
	p := models.Player{
		ID:     time.Now().UnixMilli(),
		Name:   name,
		Team:   team,
		Active: true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = append(s.players, p)
	return p
}

// Move reassigns a player to a team. Returns false when the id is unknown.
func (s *Service) Move(id int64, team string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.players {
		if s.players[i].ID == id {
			s.players[i].Team = team
			return true
		}
	}
	return false
}

// Delete removes a player. Returns false when the id is unknown.
func (s *Service) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.players {
		if s.players[i].ID == id {
			s.players = append(s.players[:i], s.players[i+1:]...)
			return true
		}
	}
	return false
}

func initialPlayers() []models.Player {
	return []models.Player{
		{ID: 1742075931014, Name: "Andrew", Team: "2", Active: true},
		{ID: 1742075931914, Name: "Seth", Team: "2", Active: true},
		{ID: 1742075933790, Name: "Jason", Team: "1", Active: true},
		{ID: 1742075935050, Name: "Nate", Team: "2", Active: true},
		{ID: 1742075939280, Name: "Joe", Team: "1", Active: false},
		{ID: 1742075941065, Name: "Ryan", Team: "1", Active: true},
		{ID: 1742075943344, Name: "JD", Team: "1", Active: true},
		{ID: 1742075954745, Name: "Frank", Team: "2", Active: true},
		{ID: 1742075979391, Name: "Ricardo", Team: "1", Active: true},
		{ID: 1742075987612, Name: "Nick", Team: "2", Active: true},
		{ID: 1742076001247, Name: "Loukas", Team: "1", Active: true},
		{ID: 1742076029522, Name: "Adam", Team: "2", Active: false},
		{ID: 1742267332075, Name: "Rodney", Team: "1", Active: true},
		{ID: 1742267457728, Name: "Mark", Team: "2", Active: true},
	}
}
