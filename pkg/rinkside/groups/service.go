package groups

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rinkside/rinkside/pkg/rinkside/blob"
	"github.com/rinkside/rinkside/pkg/rinkside/codes"
	"github.com/rinkside/rinkside/pkg/rinkside/models"
)

const groupPrefix = "_groups/"

// sasValidity is how long issued container SAS URLs remain usable.
const sasValidity = 3 * time.Hour

// ErrNotFound is returned when no group or member matches a lookup.
var ErrNotFound = errors.New("group not found")

// Service is the authoritative group registry. Groups are cached in an
// in-memory map hydrated once per process from the _groups/ prefix, and every
// mutation rewrites the whole group document (last writer wins). A single
// mutex covers the map and the load flag, so operations on different groups
// serialize against each other. Construct once at startup and keep for the
// process lifetime.
type Service struct {
	store blob.Store

	mu     sync.Mutex
	groups map[string]*models.Group
	loaded bool
}

// NewService creates a group service backed by store.
func NewService(store blob.Store) *Service {
	return &Service{
		store:  store,
		groups: make(map[string]*models.Group),
	}
}

// ensureLoadedLocked hydrates the cache from storage on first use. Documents
// that fail to download or parse are skipped; one corrupt group must never
// block access to the rest. Caller must hold s.mu. A failed listing leaves
// loaded false so the next operation retries.
func (s *Service) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	keys, err := s.store.List(ctx, groupPrefix)
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}

	for _, key := range keys {
		data, err := s.store.Get(ctx, key)
		if err != nil {
			log.Warn().Str("key", key).Err(err).Msg("skipping unreadable group document")
			continue
		}
		var g models.Group
		if err := json.Unmarshal(data, &g); err != nil || g.ID == "" {
			log.Warn().Str("key", key).Msg("skipping malformed group document")
			continue
		}
		s.groups[g.ID] = &g
	}

	s.loaded = true
	return nil
}

// saveLocked persists the whole group document. Caller must hold s.mu.
func (s *Service) saveLocked(ctx context.Context, g *models.Group) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal group %s: %w", g.ID, err)
	}
	if err := s.store.Put(ctx, groupPrefix+g.ID+".json", data); err != nil {
		return fmt.Errorf("persist group %s: %w", g.ID, err)
	}
	return nil
}

// CreateGroup creates and persists a group with a fresh admin code. The code
// is regenerated until it collides with no existing group's code; with an
// 8-character 32-symbol alphabet the loop essentially never repeats.
func (s *Service) CreateGroup(ctx context.Context, name string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	g := &models.Group{
		ID:        uuid.NewString(),
		Name:      name,
		AdminCode: codes.Generate(codes.AdminAlphabet, codes.AdminCodeLength),
		CreatedAt: time.Now().UTC(),
		Members:   []models.MemberAccess{},
	}
	for s.adminCodeTakenLocked(g.AdminCode) {
		g.AdminCode = codes.Generate(codes.AdminAlphabet, codes.AdminCodeLength)
	}

	if err := s.saveLocked(ctx, g); err != nil {
		return nil, err
	}
	s.groups[g.ID] = g

	return cloneGroup(g), nil
}

// GroupByID returns the group with the given id, or ErrNotFound.
func (s *Service) GroupByID(ctx context.Context, id string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	g, ok := s.groups[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneGroup(g), nil
}

// GroupByAdminCode returns the group with the given admin code. Matching is
// case-insensitive.
func (s *Service) GroupByAdminCode(ctx context.Context, code string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	for _, g := range s.groups {
		if strings.EqualFold(g.AdminCode, code) {
			return cloneGroup(g), nil
		}
	}
	return nil, ErrNotFound
}

// GroupByMemberCode finds the group holding an active member with the given
// code, scanning all groups. Matching is case-insensitive; revoked members
// never match.
func (s *Service) GroupByMemberCode(ctx context.Context, code string) (*models.Group, *models.MemberAccess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, nil, err
	}

	for _, g := range s.groups {
		for i := range g.Members {
			m := g.Members[i]
			if m.Active && strings.EqualFold(m.Code, code) {
				return cloneGroup(g), &m, nil
			}
		}
	}
	return nil, nil, ErrNotFound
}

// AddMember appends a new member access entry to the group. The member code
// is kept unique across every member of every group, active or not, so a
// code identifies exactly one membership for its entire life.
func (s *Service) AddMember(ctx context.Context, groupID, label string) (*models.MemberAccess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	g, ok := s.groups[groupID]
	if !ok {
		return nil, ErrNotFound
	}

	member := models.MemberAccess{
		Code:   codes.Generate(codes.MemberAlphabet, codes.MemberCodeLength),
		Label:  label,
		Active: true,
	}
	for s.memberCodeTakenLocked(member.Code) {
		member.Code = codes.Generate(codes.MemberAlphabet, codes.MemberCodeLength)
	}

	g.Members = append(g.Members, member)
	if err := s.saveLocked(ctx, g); err != nil {
		return nil, err
	}

	return &member, nil
}

// RevokeMember deactivates a member code. The entry stays in the group with
// Active=false. Returns false when the group or member does not exist.
func (s *Service) RevokeMember(ctx context.Context, groupID, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return false, err
	}

	g, ok := s.groups[groupID]
	if !ok {
		return false, nil
	}

	for i := range g.Members {
		if strings.EqualFold(g.Members[i].Code, code) {
			g.Members[i].Active = false
			if err := s.saveLocked(ctx, g); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// SasURLs mints fresh container SAS URLs expiring three hours from now. The
// read URL is always present; the write URL only when canWrite is set. Every
// call signs anew, nothing is cached; clients re-request when storage rejects
// an expired token.
func (s *Service) SasURLs(canWrite bool) (*models.SasTokenSet, error) {
	expiresAt := time.Now().UTC().Add(sasValidity)

	readURL, err := s.store.SignURL(blob.ScopeRead, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign read url: %w", err)
	}

	set := &models.SasTokenSet{
		ReadURL:   readURL,
		ExpiresAt: expiresAt,
	}
	if canWrite {
		writeURL, err := s.store.SignURL(blob.ScopeReadWrite, expiresAt)
		if err != nil {
			return nil, fmt.Errorf("sign write url: %w", err)
		}
		set.WriteURL = &writeURL
	}
	return set, nil
}

func (s *Service) adminCodeTakenLocked(code string) bool {
	for _, g := range s.groups {
		if strings.EqualFold(g.AdminCode, code) {
			return true
		}
	}
	return false
}

func (s *Service) memberCodeTakenLocked(code string) bool {
	for _, g := range s.groups {
		for i := range g.Members {
			if strings.EqualFold(g.Members[i].Code, code) {
				return true
			}
		}
	}
	return false
}

// cloneGroup copies a group so callers cannot reach into the cache.
func cloneGroup(g *models.Group) *models.Group {
	c := *g
	c.Members = append([]models.MemberAccess(nil), g.Members...)
	return &c
}
