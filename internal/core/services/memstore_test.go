package services_test

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
)

// memStore is a map-backed store used to drive the workflow end to end.
// Transactions are serialized and roll back by restoring a snapshot.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	levels      map[string]domain.ApprovalLevel
	assignments map[string]domain.ApprovalLevelAssignment
	entries     map[string]domain.WasteEntry
	approvals   map[string]domain.WasteApproval
	users       map[string]domain.UserProfile
	lines       map[string]domain.ProductionLine
}

func newMemStore() *memStore {
	return &memStore{
		levels:      map[string]domain.ApprovalLevel{},
		assignments: map[string]domain.ApprovalLevelAssignment{},
		entries:     map[string]domain.WasteEntry{},
		approvals:   map[string]domain.WasteApproval{},
		users:       map[string]domain.UserProfile{},
		lines:       map[string]domain.ProductionLine{},
	}
}

func (m *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ApprovalLevelRepo: m,
		WasteEntryRepo:    m,
		WasteApprovalRepo: m,
		UserDirectory:     m,
		LineDirectory:     m,
		UnitOfWork:        m,
	}
}

var (
	_ portsrepo.ApprovalLevelRepositoryFacade = (*memStore)(nil)
	_ portsrepo.WasteEntryRepositoryWithLock  = (*memStore)(nil)
	_ portsrepo.WasteApprovalRepositoryFacade = (*memStore)(nil)
	_ portsrepo.UnitOfWork                    = (*memStore)(nil)
)

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m *memStore) Within(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	levels, assignments := cloneMap(m.levels), cloneMap(m.assignments)
	entries, approvals := cloneMap(m.entries), cloneMap(m.approvals)
	m.mu.Unlock()

	err := fn(ctx, portsrepo.TxRepositories{Levels: m, Entries: m, Approvals: m})
	if err != nil {
		m.mu.Lock()
		m.levels, m.assignments, m.entries, m.approvals = levels, assignments, entries, approvals
		m.mu.Unlock()
	}
	return err
}

// --- levels ---

func (m *memStore) sortedLevels(keep func(domain.ApprovalLevel) bool) []domain.ApprovalLevel {
	out := []domain.ApprovalLevel{}
	for _, l := range m.levels {
		if keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LevelOrder < out[j].LevelOrder })
	return out
}

func (m *memStore) ListLevels(_ context.Context) ([]domain.ApprovalLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	levels := m.sortedLevels(func(domain.ApprovalLevel) bool { return true })
	for i := range levels {
		levels[i].Approvers = []domain.LevelApprover{}
		for _, a := range m.assignments {
			if a.LevelID != levels[i].LevelID {
				continue
			}
			approver := domain.LevelApprover{AssignmentID: a.AssignmentID, LevelID: a.LevelID, UserID: a.UserID}
			if u, ok := m.users[a.UserID]; ok {
				approver.Name, approver.Email = u.Name, u.Email
			}
			levels[i].Approvers = append(levels[i].Approvers, approver)
		}
	}
	return levels, nil
}

func (m *memStore) FindLevelByID(_ context.Context, levelID string) (*domain.ApprovalLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.levels[levelID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &l, nil
}

func (m *memStore) ListActiveLevels(_ context.Context) (domain.Ladder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedLevels(func(l domain.ApprovalLevel) bool { return l.IsActive }), nil
}

func (m *memStore) ListLevelsByApprover(_ context.Context, userID string) ([]domain.ApprovalLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedLevels(func(l domain.ApprovalLevel) bool {
		for _, a := range m.assignments {
			if a.LevelID == l.LevelID && a.UserID == userID {
				return true
			}
		}
		return false
	}), nil
}

func (m *memStore) IsApproverAssigned(_ context.Context, levelID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assignments {
		if a.LevelID == levelID && a.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) SaveLevelWithNextOrder(_ context.Context, level *domain.ApprovalLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	maxOrder := 0
	for _, l := range m.levels {
		if l.LevelOrder > maxOrder {
			maxOrder = l.LevelOrder
		}
	}
	level.LevelOrder = maxOrder + 1
	m.levels[level.LevelID] = *level
	return nil
}

func (m *memStore) UpdateLevel(_ context.Context, level domain.ApprovalLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.levels[level.LevelID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != level.Version {
		return apperrors.NewConflictError("level changed concurrently")
	}
	level.Version++
	level.Approvers = nil
	m.levels[level.LevelID] = level
	return nil
}

func (m *memStore) DeleteLevel(_ context.Context, levelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.levels, levelID)
	for id, a := range m.assignments {
		if a.LevelID == levelID {
			delete(m.assignments, id)
		}
	}
	return nil
}

func (m *memStore) SaveAssignment(_ context.Context, assignment domain.ApprovalLevelAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assignments {
		if a.LevelID == assignment.LevelID && a.UserID == assignment.UserID {
			return apperrors.ErrDuplicate
		}
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *memStore) DeleteAssignment(_ context.Context, assignmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.assignments, assignmentID)
	return nil
}

// --- entries ---

func (m *memStore) FindEntryByID(_ context.Context, entryID string) (*domain.WasteEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (m *memStore) FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.WasteEntry, error) {
	return m.FindEntryByID(ctx, entryID)
}

func (m *memStore) ListEntries(_ context.Context, query domain.EntryListQuery) ([]domain.WasteEntryView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.WasteEntryView{}
	for _, e := range m.entries {
		if query.Status != domain.FilterAll && string(e.ApprovalStatus) != string(query.Status) {
			continue
		}
		if query.LevelOrders != nil && !containsInt(query.LevelOrders, e.CurrentApprovalLevel) {
			continue
		}
		view := domain.WasteEntryView{WasteEntry: e}
		if u, ok := m.users[e.CreatedBy]; ok {
			view.CreatorName = u.Name
		}
		if l, ok := m.lines[e.LineID]; ok {
			name := l.Name
			view.LineName = &name
		}
		out = append(out, view)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func (m *memStore) SaveEntry(_ context.Context, entry domain.WasteEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *memStore) UpdateEntryWorkflow(_ context.Context, entry domain.WasteEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.entries[entry.EntryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != entry.Version {
		return apperrors.NewConflictError("entry changed concurrently")
	}
	stored.ApprovalStatus = entry.ApprovalStatus
	stored.CurrentApprovalLevel = entry.CurrentApprovalLevel
	stored.AppApproved = entry.AppApproved
	stored.FormApproved = entry.FormApproved
	stored.LastUpdatedAt = entry.LastUpdatedAt
	stored.LastUpdatedBy = entry.LastUpdatedBy
	stored.Version++
	m.entries[entry.EntryID] = stored
	return nil
}

// --- ledger ---

func (m *memStore) FindApproval(_ context.Context, entryID, levelID string) (*domain.WasteApproval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.approvals {
		if a.EntryID == entryID && a.LevelID == levelID {
			return &a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) ledger(entryID string) []domain.WasteApproval {
	out := []domain.WasteApproval{}
	for _, a := range m.approvals {
		if a.EntryID != entryID {
			continue
		}
		if l, ok := m.levels[a.LevelID]; ok {
			name, order := l.Name, l.LevelOrder
			a.LevelName, a.LevelOrder = &name, &order
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LevelOrder == nil || out[j].LevelOrder == nil {
			return out[j].LevelOrder == nil && out[i].LevelOrder != nil
		}
		return *out[i].LevelOrder < *out[j].LevelOrder
	})
	return out
}

func (m *memStore) ListApprovalsByEntry(_ context.Context, entryID string) ([]domain.WasteApproval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger(entryID), nil
}

func (m *memStore) ListLedgerLevels(_ context.Context, entryID string) (domain.Ladder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ladder := domain.Ladder{}
	for _, a := range m.ledger(entryID) {
		if l, ok := m.levels[a.LevelID]; ok {
			ladder = append(ladder, l)
		}
	}
	return ladder, nil
}

func (m *memStore) SaveApprovals(_ context.Context, approvals []domain.WasteApproval) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range approvals {
		m.approvals[a.ApprovalID] = a
	}
	return nil
}

func (m *memStore) RecordDecision(_ context.Context, approval domain.WasteApproval) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.approvals[approval.ApprovalID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Status != domain.StatusPending {
		return apperrors.NewConflictError("ledger row already decided")
	}
	stored.Status = approval.Status
	stored.ApprovedBy = approval.ApprovedBy
	stored.Comments = approval.Comments
	stored.DecidedAt = approval.DecidedAt
	stored.LastUpdatedAt = approval.LastUpdatedAt
	stored.LastUpdatedBy = approval.LastUpdatedBy
	m.approvals[approval.ApprovalID] = stored
	return nil
}

// --- directories ---

func (m *memStore) FindProfile(_ context.Context, userID string) (*domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) FindLineByID(_ context.Context, lineID string) (*domain.ProductionLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lines[lineID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &l, nil
}

// --- helpers for tests ---

func (m *memStore) entry(id string) domain.WasteEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[id]
}

func (m *memStore) ledgerFor(entryID string) []domain.WasteApproval {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger(entryID)
}
