package core

import (
	"context"
	"fmt"
	"sync"

	"firebase.google.com/go/v4/messaging"

	"fitmyphone-backend-go/internal/db"
	"fitmyphone-backend-go/internal/models"
)

// fakeState is the in-memory document store shared by the fakes below.
type fakeState struct {
	mu            sync.Mutex
	contributions map[string]*models.Contribution
	accessories   map[string]*models.Accessory
	accessoryIDs  []string // insertion order, for deterministic type lookup
	users         map[string]*models.User
	masterModels  map[string]struct{}
	searchLogs    []*models.SearchLog
	nextID        int
}

func newFakeState() *fakeState {
	return &fakeState{
		contributions: make(map[string]*models.Contribution),
		accessories:   make(map[string]*models.Accessory),
		users:         make(map[string]*models.User),
		masterModels:  make(map[string]struct{}),
	}
}

func (s *fakeState) allocID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *fakeState) putAccessory(a *models.Accessory) {
	if a.ID == "" {
		a.ID = s.allocID("acc")
	}
	if _, exists := s.accessories[a.ID]; !exists {
		s.accessoryIDs = append(s.accessoryIDs, a.ID)
	}
	s.accessories[a.ID] = a
}

func (s *fakeState) putContribution(c *models.Contribution) {
	if c.ID == "" {
		c.ID = s.allocID("contrib")
	}
	s.contributions[c.ID] = c
}

func copyContribution(c *models.Contribution) *models.Contribution {
	clone := *c
	clone.Models = append([]string(nil), c.Models...)
	return &clone
}

func copyAccessory(a *models.Accessory) *models.Accessory {
	clone := *a
	clone.Models = append([]models.AccessoryModel(nil), a.Models...)
	return &clone
}

// fakeReconciliationStore runs the transaction function against the shared
// state. Reads see the pre-transaction state; writes are buffered and applied
// only when the function returns nil, matching the real transaction contract.
// forcedRetries makes the first N attempts discard their writes and rerun the
// function, simulating contention retries.
type fakeReconciliationStore struct {
	state         *fakeState
	forcedRetries int
	attempts      int
}

func (s *fakeReconciliationStore) Run(_ context.Context, fn func(tx db.ReconciliationTx) error) error {
	for {
		s.attempts++
		tx := &fakeReconciliationTx{state: s.state}
		if err := fn(tx); err != nil {
			return err
		}
		if s.attempts <= s.forcedRetries {
			continue // discard the buffered writes and retry
		}
		s.state.mu.Lock()
		for _, apply := range tx.writes {
			apply()
		}
		s.state.mu.Unlock()
		return nil
	}
}

type fakeReconciliationTx struct {
	state  *fakeState
	writes []func()
}

func (t *fakeReconciliationTx) Contribution(contributionID string) (*models.Contribution, error) {
	t.state.mu.Lock()
	defer t.state.mu.Unlock()
	c, ok := t.state.contributions[contributionID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return copyContribution(c), nil
}

func (t *fakeReconciliationTx) AccessoryByID(accessoryID string) (*models.Accessory, error) {
	t.state.mu.Lock()
	defer t.state.mu.Unlock()
	a, ok := t.state.accessories[accessoryID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return copyAccessory(a), nil
}

func (t *fakeReconciliationTx) FirstAccessoryByType(accessoryType string) (*models.Accessory, error) {
	t.state.mu.Lock()
	defer t.state.mu.Unlock()
	for _, id := range t.state.accessoryIDs {
		if a := t.state.accessories[id]; a.AccessoryType == accessoryType {
			return copyAccessory(a), nil
		}
	}
	return nil, db.ErrNotFound
}

func (t *fakeReconciliationTx) User(userID string) (*models.User, error) {
	t.state.mu.Lock()
	defer t.state.mu.Unlock()
	u, ok := t.state.users[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (t *fakeReconciliationTx) MissingMasterModels(names []string) ([]string, error) {
	t.state.mu.Lock()
	defer t.state.mu.Unlock()
	var missing []string
	for _, name := range names {
		if _, ok := t.state.masterModels[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func (t *fakeReconciliationTx) SaveAccessory(accessory *models.Accessory) error {
	clone := copyAccessory(accessory)
	t.writes = append(t.writes, func() {
		t.state.putAccessory(clone)
	})
	// The caller needs the assigned ID before commit, like tx.Create does.
	if accessory.ID == "" {
		t.state.mu.Lock()
		accessory.ID = t.state.allocID("acc")
		t.state.mu.Unlock()
		clone.ID = accessory.ID
	}
	return nil
}

func (t *fakeReconciliationTx) CreateMasterModels(names []string) error {
	cloned := append([]string(nil), names...)
	t.writes = append(t.writes, func() {
		for _, name := range cloned {
			t.state.masterModels[name] = struct{}{}
		}
	})
	return nil
}

func (t *fakeReconciliationTx) AddUserPoints(userID string, points int) error {
	t.writes = append(t.writes, func() {
		if u, ok := t.state.users[userID]; ok {
			u.Points += points
		}
	})
	return nil
}

func (t *fakeReconciliationTx) SaveContribution(contribution *models.Contribution) error {
	clone := copyContribution(contribution)
	t.writes = append(t.writes, func() {
		t.state.putContribution(clone)
	})
	return nil
}

// fakeContributionRepo implements db.ContributionRepository over the shared state.
type fakeContributionRepo struct {
	state *fakeState
}

func (r *fakeContributionRepo) Create(_ context.Context, contribution *models.Contribution) (string, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.putContribution(contribution)
	return contribution.ID, nil
}

func (r *fakeContributionRepo) GetByID(_ context.Context, contributionID string) (*models.Contribution, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	c, ok := r.state.contributions[contributionID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return copyContribution(c), nil
}

func (r *fakeContributionRepo) ListByStatus(_ context.Context, status string, limit int) ([]*models.Contribution, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []*models.Contribution
	for _, c := range r.state.contributions {
		if c.Status == status {
			out = append(out, copyContribution(c))
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeContributionRepo) ListBySubmitter(_ context.Context, userID string, limit int) ([]*models.Contribution, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []*models.Contribution
	for _, c := range r.state.contributions {
		if c.SubmittedBy == userID {
			out = append(out, copyContribution(c))
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeContributionRepo) Update(_ context.Context, contribution *models.Contribution) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.contributions[contribution.ID]; !ok {
		return db.ErrNotFound
	}
	r.state.contributions[contribution.ID] = copyContribution(contribution)
	return nil
}

func (r *fakeContributionRepo) Delete(_ context.Context, contributionID string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.contributions[contributionID]; !ok {
		return db.ErrNotFound
	}
	delete(r.state.contributions, contributionID)
	return nil
}

// fakeUserRepo implements db.UserRepository over the shared state.
type fakeUserRepo struct {
	state *fakeState
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	u, ok := r.state.users[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	clone := *user
	r.state.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.users[user.ID]; !ok {
		return db.ErrNotFound
	}
	clone := *user
	r.state.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) ListTop(_ context.Context, limit int) ([]*models.User, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []*models.User
	for _, u := range r.state.users {
		clone := *u
		out = append(out, &clone)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// fakeAccessoryRepo implements db.AccessoryRepository over the shared state,
// recording every committed batch for assertions.
type fakeAccessoryRepo struct {
	state      *fakeState
	batches    [][]db.AccessoryWrite
	commitErr  error
	getByTypeF func(accessoryType string) ([]*models.Accessory, error)
}

func (r *fakeAccessoryRepo) GetByID(_ context.Context, accessoryID string) (*models.Accessory, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	a, ok := r.state.accessories[accessoryID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return copyAccessory(a), nil
}

func (r *fakeAccessoryRepo) GetByType(_ context.Context, accessoryType string) ([]*models.Accessory, error) {
	if r.getByTypeF != nil {
		return r.getByTypeF(accessoryType)
	}
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []*models.Accessory
	for _, id := range r.state.accessoryIDs {
		if a := r.state.accessories[id]; a.AccessoryType == accessoryType {
			out = append(out, copyAccessory(a))
		}
	}
	return out, nil
}

func (r *fakeAccessoryRepo) Create(_ context.Context, accessory *models.Accessory) (string, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.putAccessory(accessory)
	return accessory.ID, nil
}

func (r *fakeAccessoryRepo) Update(_ context.Context, accessory *models.Accessory) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.accessories[accessory.ID]; !ok {
		return db.ErrNotFound
	}
	r.state.accessories[accessory.ID] = copyAccessory(accessory)
	return nil
}

func (r *fakeAccessoryRepo) Delete(_ context.Context, accessoryID string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	delete(r.state.accessories, accessoryID)
	return nil
}

func (r *fakeAccessoryRepo) CommitBatch(_ context.Context, writes []db.AccessoryWrite) error {
	if r.commitErr != nil {
		return r.commitErr
	}
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.batches = append(r.batches, writes)
	for _, w := range writes {
		a := copyAccessory(w.Accessory)
		a.ID = w.DocID
		r.state.putAccessory(a)
	}
	return nil
}

func (r *fakeAccessoryRepo) Watch(ctx context.Context, accessoryType string) (<-chan []*models.Accessory, <-chan error) {
	updates := make(chan []*models.Accessory, 1)
	errs := make(chan error, 1)
	current, _ := r.GetByType(ctx, accessoryType)
	updates <- current
	close(updates)
	close(errs)
	return updates, errs
}

// fakeMasterModelRepo implements db.MasterModelRepository over the shared state.
type fakeMasterModelRepo struct {
	state *fakeState
}

func (r *fakeMasterModelRepo) Upsert(_ context.Context, name string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.masterModels[name] = struct{}{}
	return nil
}

func (r *fakeMasterModelRepo) BulkUpsert(_ context.Context, names []string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, name := range names {
		r.state.masterModels[name] = struct{}{}
	}
	return nil
}

func (r *fakeMasterModelRepo) List(_ context.Context) ([]*models.MasterModel, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []*models.MasterModel
	for name := range r.state.masterModels {
		out = append(out, &models.MasterModel{Name: name})
	}
	return out, nil
}

// fakeSearchLogRepo implements db.SearchLogRepository over the shared state.
type fakeSearchLogRepo struct {
	state     *fakeState
	appendErr error
}

func (r *fakeSearchLogRepo) Append(_ context.Context, entry *models.SearchLog) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	clone := *entry
	r.state.searchLogs = append(r.state.searchLogs, &clone)
	return nil
}

func (r *fakeSearchLogRepo) ListSince(_ context.Context, since string) ([]*models.SearchLog, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []*models.SearchLog
	for _, entry := range r.state.searchLogs {
		if entry.Date >= since {
			clone := *entry
			out = append(out, &clone)
		}
	}
	return out, nil
}

// fakeCategoryRepo implements db.CategoryRepository in memory.
type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories []*models.Category
	nextID     int
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, name string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, db.ErrNotFound
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *models.Category) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	category.ID = fmt.Sprintf("cat-%d", r.nextID)
	clone := *category
	r.categories = append(r.categories, &clone)
	return category.ID, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, categoryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.categories {
		if c.ID == categoryID {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

// fakeSuggester records Suggest calls and returns a canned suggestion.
type fakeSuggester struct {
	calls      int
	suggestion *models.Suggestion
	err        error
}

func (f *fakeSuggester) Suggest(_ context.Context, _, _ string) (*models.Suggestion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestion, nil
}

// fakeNotifier records approval notifications.
type fakeNotifier struct {
	notified []string // contribution IDs
	err      error
}

func (f *fakeNotifier) NotifyContributionApproved(_ context.Context, _ *models.User, contribution *models.Contribution) error {
	f.notified = append(f.notified, contribution.ID)
	return f.err
}

// fakeMessenger records FCM sends and can fail specific tokens.
type fakeMessenger struct {
	sent       []string // tokens
	failTokens map[string]struct{}
}

func (f *fakeMessenger) Send(_ context.Context, message *messaging.Message) (string, error) {
	if _, fail := f.failTokens[message.Token]; fail {
		return "", fmt.Errorf("unregistered token %q", message.Token)
	}
	f.sent = append(f.sent, message.Token)
	return "msg-" + message.Token, nil
}
