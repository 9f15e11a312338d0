package serviceimpl

import (
	"context"
	"errors"
	"sort"
	"sync"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/domain/repositories"
)

// memoryStore is an in-memory stand-in for the relational store. Boards
// and tasks are kept by value so callers never alias stored rows.
type memoryStore struct {
	mu          sync.Mutex
	boards      map[uint]models.Board
	tasks       map[uint]models.Task
	nextBoardID uint
	nextTaskID  uint

	failBoardDelete error
	failList        error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		boards:      map[uint]models.Board{},
		tasks:       map[uint]models.Task{},
		nextBoardID: 1,
		nextTaskID:  1,
	}
}

func (m *memoryStore) snapshot() (map[uint]models.Board, map[uint]models.Task, uint, uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	boards := make(map[uint]models.Board, len(m.boards))
	for k, v := range m.boards {
		boards[k] = v
	}
	tasks := make(map[uint]models.Task, len(m.tasks))
	for k, v := range m.tasks {
		tasks[k] = v
	}
	return boards, tasks, m.nextBoardID, m.nextTaskID
}

func (m *memoryStore) restore(boards map[uint]models.Board, tasks map[uint]models.Task, nextBoard, nextTask uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boards = boards
	m.tasks = tasks
	m.nextBoardID = nextBoard
	m.nextTaskID = nextTask
}

func (m *memoryStore) tasksOf(boardID uint) []models.Task {
	var tasks []models.Task
	for _, t := range m.tasks {
		if t.BoardID == boardID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// memoryTransactor restores the store when fn fails, mimicking a rollback.
// afterSnapshot runs once, right after the next snapshot read returns.
type memoryTransactor struct {
	store         *memoryStore
	commitErr     error
	calls         int
	afterSnapshot func()
}

func (t *memoryTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	boards, tasks, nb, nt := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(boards, tasks, nb, nt)
		return err
	}
	if t.commitErr != nil {
		t.store.restore(boards, tasks, nb, nt)
		return t.commitErr
	}
	return nil
}

func (t *memoryTransactor) WithinSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	err := fn(ctx)
	if hook := t.afterSnapshot; hook != nil {
		t.afterSnapshot = nil
		hook()
	}
	return err
}

type memoryBoardRepo struct{ store *memoryStore }

func (r *memoryBoardRepo) Create(ctx context.Context, board *models.Board) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	board.ID = r.store.nextBoardID
	r.store.nextBoardID++
	stored := *board
	stored.Tasks = nil
	r.store.boards[board.ID] = stored
	return nil
}

func (r *memoryBoardRepo) GetByID(ctx context.Context, id uint) (*models.Board, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	board, ok := r.store.boards[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	board.Tasks = r.store.tasksOf(id)
	return &board, nil
}

func (r *memoryBoardRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Board, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryBoardRepo) Exists(ctx context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.boards[id]
	return ok, nil
}

func (r *memoryBoardRepo) ExistsForShare(ctx context.Context, id uint) (bool, error) {
	return r.Exists(ctx, id)
}

func (r *memoryBoardRepo) Update(ctx context.Context, board *models.Board) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.boards[board.ID]
	if !ok {
		return repositories.ErrRecordNotFound
	}
	stored.Name = board.Name
	stored.Description = board.Description
	stored.UpdatedAt = board.UpdatedAt
	r.store.boards[board.ID] = stored
	return nil
}

func (r *memoryBoardRepo) Delete(ctx context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failBoardDelete != nil {
		return r.store.failBoardDelete
	}
	if len(r.store.tasksOf(id)) > 0 {
		return errors.New("foreign key violation: board still has tasks")
	}
	delete(r.store.boards, id)
	return nil
}

func (r *memoryBoardRepo) List(ctx context.Context) ([]*models.Board, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failList != nil {
		return nil, r.store.failList
	}
	boards := make([]*models.Board, 0, len(r.store.boards))
	for _, b := range r.store.boards {
		board := b
		board.Tasks = r.store.tasksOf(b.ID)
		boards = append(boards, &board)
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].ID < boards[j].ID })
	return boards, nil
}

type memoryTaskRepo struct {
	store           *memoryStore
	deletedByBoards []uint
}

func (r *memoryTaskRepo) Create(ctx context.Context, task *models.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.boards[task.BoardID]; !ok {
		return errors.New("foreign key violation")
	}
	task.ID = r.store.nextTaskID
	r.store.nextTaskID++
	r.store.tasks[task.ID] = *task
	return nil
}

func (r *memoryTaskRepo) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	task, ok := r.store.tasks[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return &task, nil
}

func (r *memoryTaskRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Task, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryTaskRepo) GetByBoardID(ctx context.Context, boardID uint) ([]*models.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tasks := []*models.Task{}
	for _, t := range r.store.tasksOf(boardID) {
		task := t
		tasks = append(tasks, &task)
	}
	return tasks, nil
}

func (r *memoryTaskRepo) Update(ctx context.Context, task *models.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.tasks[task.ID]
	if !ok {
		return repositories.ErrRecordNotFound
	}
	stored.Title = task.Title
	stored.Description = task.Description
	stored.Status = task.Status
	stored.Priority = task.Priority
	stored.DueDate = task.DueDate
	stored.UpdatedAt = task.UpdatedAt
	r.store.tasks[task.ID] = stored
	return nil
}

func (r *memoryTaskRepo) Delete(ctx context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.tasks, id)
	return nil
}

func (r *memoryTaskRepo) DeleteByBoardID(ctx context.Context, boardID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.deletedByBoards = append(r.deletedByBoards, boardID)
	var n int64
	for id, t := range r.store.tasks {
		if t.BoardID == boardID {
			delete(r.store.tasks, id)
			n++
		}
	}
	return n, nil
}

func (r *memoryTaskRepo) List(ctx context.Context) ([]*models.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failList != nil {
		return nil, r.store.failList
	}
	tasks := make([]*models.Task, 0, len(r.store.tasks))
	for _, t := range r.store.tasks {
		task := t
		tasks = append(tasks, &task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

type recordingPublisher struct {
	events []ports.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event *ports.DomainEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, *event)
	return nil
}

func (p *recordingPublisher) types() []string {
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

// memoryCache mirrors the versioned Redis cache: setters only store when
// the version they were given is still current.
type memoryCache struct {
	boards      map[uint]dto.BoardResponse
	versions    map[uint]int64
	list        []dto.BoardResponse
	hasList     bool
	listVersion int64
	invalidated []uint
	readErr     error
	versionErr  error
	staleWrites int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		boards:   map[uint]dto.BoardResponse{},
		versions: map[uint]int64{},
	}
}

func (c *memoryCache) BoardVersion(ctx context.Context, id uint) (int64, error) {
	if c.versionErr != nil {
		return 0, c.versionErr
	}
	return c.versions[id], nil
}

func (c *memoryCache) ListVersion(ctx context.Context) (int64, error) {
	if c.versionErr != nil {
		return 0, c.versionErr
	}
	return c.listVersion, nil
}

func (c *memoryCache) GetBoard(ctx context.Context, id uint) (*dto.BoardResponse, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	board, ok := c.boards[id]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return &board, nil
}

func (c *memoryCache) SetBoard(ctx context.Context, board *dto.BoardResponse, version int64) error {
	if c.versions[board.ID] != version {
		c.staleWrites++
		return ports.ErrCacheStale
	}
	c.boards[board.ID] = *board
	return nil
}

func (c *memoryCache) GetBoardList(ctx context.Context) ([]dto.BoardResponse, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	if !c.hasList {
		return nil, ports.ErrCacheMiss
	}
	return c.list, nil
}

func (c *memoryCache) SetBoardList(ctx context.Context, boards []dto.BoardResponse, version int64) error {
	if c.listVersion != version {
		c.staleWrites++
		return ports.ErrCacheStale
	}
	c.list = boards
	c.hasList = true
	return nil
}

func (c *memoryCache) InvalidateBoard(ctx context.Context, id uint) error {
	c.versions[id]++
	c.listVersion++
	delete(c.boards, id)
	c.list = nil
	c.hasList = false
	c.invalidated = append(c.invalidated, id)
	return nil
}

type testEnv struct {
	store     *memoryStore
	tx        *memoryTransactor
	boardRepo *memoryBoardRepo
	taskRepo  *memoryTaskRepo
	publisher *recordingPublisher
	boards    *BoardServiceImpl
	tasks     *TaskServiceImpl
}

func newTestEnv() *testEnv {
	store := newMemoryStore()
	env := &testEnv{
		store:     store,
		tx:        &memoryTransactor{store: store},
		boardRepo: &memoryBoardRepo{store: store},
		taskRepo:  &memoryTaskRepo{store: store},
		publisher: &recordingPublisher{},
	}
	env.boards = NewBoardService(env.boardRepo, env.taskRepo, env.tx, env.publisher).(*BoardServiceImpl)
	env.tasks = NewTaskService(env.taskRepo, env.boardRepo, env.tx, env.publisher).(*TaskServiceImpl)
	return env
}

func newCachedTestEnv(cache ports.BoardCachePort) *testEnv {
	env := newTestEnv()
	env.boards = NewBoardServiceWithCache(env.boardRepo, env.taskRepo, env.tx, env.publisher, cache).(*BoardServiceImpl)
	env.tasks = NewTaskServiceWithCache(env.taskRepo, env.boardRepo, env.tx, env.publisher, cache).(*TaskServiceImpl)
	return env
}
