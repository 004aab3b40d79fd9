package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ncobase/tasklist/ecode"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/nanoid"
	"github.com/ncobase/tasklist/types"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fakeClock returns the set time and advances by step after every call.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), step: time.Second}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func (c *fakeClock) Set(t time.Time, step time.Duration) {
	c.mu.Lock()
	c.now, c.step = t, step
	c.mu.Unlock()
}

type factory func(t *testing.T, opts ...Option) TaskRepository

func backends(t *testing.T) map[string]factory {
	t.Helper()
	b := map[string]factory{
		"memory": func(t *testing.T, opts ...Option) TaskRepository { return NewMemory(opts...) },
		"sqlite": func(t *testing.T, opts ...Option) TaskRepository {
			return NewGorm(openGorm(t, sqlite.Open(":memory:")), opts...)
		},
	}
	if dsn := os.Getenv("TASKLIST_TEST_POSTGRES_DSN"); dsn != "" {
		b["postgres"] = func(t *testing.T, opts ...Option) TaskRepository {
			return NewGorm(openGorm(t, postgres.Open(dsn)), opts...)
		}
	}
	if dsn := os.Getenv("TASKLIST_TEST_MYSQL_DSN"); dsn != "" {
		b["mysql"] = func(t *testing.T, opts ...Option) TaskRepository {
			return NewGorm(openGorm(t, mysql.Open(dsn)), opts...)
		}
	}
	if addr := os.Getenv("TASKLIST_TEST_REDIS_ADDR"); addr != "" {
		b["redis"] = func(t *testing.T, opts ...Option) TaskRepository {
			rc := redis.NewClient(&redis.Options{Addr: addr})
			prefix := "tasklist-test-" + nanoid.PrimaryKey()
			t.Cleanup(func() {
				hashKey, orderKey := redisKeys(prefix)
				rc.Del(context.Background(), hashKey, orderKey)
				_ = rc.Close()
			})
			return NewRedis(rc, prefix, opts...)
		}
	}
	return b
}

// openGorm opens a migrated, emptied database. One connection keeps sqlite's
// :memory: database alive and shared across calls.
func openGorm(t *testing.T, dialector gorm.Dialector) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open %s: %v", dialector.Name(), err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&taskModel{}).Error; err != nil {
		t.Fatalf("reset tasks: %v", err)
	}
	return db
}

func quiet() Option { return WithLogger(logger.Discard()) }

func TestRepositoryCRUD(t *testing.T) {
	for name, newRepo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			clock := newFakeClock()
			repo := newRepo(t, WithClock(clock.Now), quiet())

			tasks, err := repo.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if tasks == nil || len(tasks) != 0 {
				t.Fatalf("expected empty non-nil list, got %v", tasks)
			}

			milk, err := repo.Create(ctx, "Buy milk", types.Blue)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if milk.Completed || !nanoid.IsPrimaryKey(milk.ID) {
				t.Errorf("unexpected created task %+v", milk)
			}
			if !milk.CreatedAt.Equal(milk.UpdatedAt) {
				t.Errorf("expected createdAt == updatedAt, got %v %v", milk.CreatedAt, milk.UpdatedAt)
			}

			bread, err := repo.Create(ctx, "Buy bread", types.Red)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if bread.ID == milk.ID {
				t.Fatalf("expected unique ids")
			}

			got, err := repo.GetByID(ctx, milk.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Title != "Buy milk" || got.Color != types.Blue || !got.CreatedAt.Equal(milk.CreatedAt) {
				t.Errorf("unexpected task %+v", got)
			}

			edited, err := repo.Update(ctx, milk.ID, "Buy oat milk", types.Green)
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if edited.Title != "Buy oat milk" || edited.Color != types.Green {
				t.Errorf("unexpected edited task %+v", edited)
			}
			if !edited.UpdatedAt.After(milk.UpdatedAt) || !edited.CreatedAt.Equal(milk.CreatedAt) {
				t.Errorf("expected updatedAt refreshed and createdAt fixed, got %+v", edited)
			}

			toggled, err := repo.Toggle(ctx, milk.ID)
			if err != nil {
				t.Fatalf("toggle: %v", err)
			}
			if !toggled.Completed || !toggled.UpdatedAt.After(edited.UpdatedAt) {
				t.Errorf("unexpected toggled task %+v", toggled)
			}
			back, err := repo.Toggle(ctx, milk.ID)
			if err != nil {
				t.Fatalf("toggle: %v", err)
			}
			if back.Completed {
				t.Errorf("expected second toggle to restore completed=false")
			}

			tasks, err = repo.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(tasks) != 2 || tasks[0].ID != milk.ID || tasks[1].ID != bread.ID {
				t.Fatalf("expected creation order [milk bread], got %+v", tasks)
			}

			if err := repo.Delete(ctx, milk.ID); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := repo.GetByID(ctx, milk.ID); !errors.Is(err, ecode.ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
			tasks, _ = repo.List(ctx)
			if len(tasks) != 1 || tasks[0].ID != bread.ID {
				t.Errorf("expected only bread left, got %+v", tasks)
			}
		})
	}
}

func TestRepositoryNotFound(t *testing.T) {
	for name, newRepo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t, quiet())

			if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ecode.ErrNotFound) {
				t.Errorf("get: expected ErrNotFound, got %v", err)
			}
			if _, err := repo.Update(ctx, "missing", "title", types.Red); !errors.Is(err, ecode.ErrNotFound) {
				t.Errorf("update: expected ErrNotFound, got %v", err)
			}
			if _, err := repo.Toggle(ctx, "missing"); !errors.Is(err, ecode.ErrNotFound) {
				t.Errorf("toggle: expected ErrNotFound, got %v", err)
			}
			if err := repo.Delete(ctx, "missing"); !errors.Is(err, ecode.ErrNotFound) {
				t.Errorf("delete: expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestRepositoryUpdatedAtNeverGoesBackwards(t *testing.T) {
	for name, newRepo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			clock := newFakeClock()
			repo := newRepo(t, WithClock(clock.Now), quiet())

			task, err := repo.Create(ctx, "Walk the dog", types.Brown)
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			// wall clock stepped back an hour
			clock.Set(task.UpdatedAt.Add(-time.Hour), 0)
			toggled, err := repo.Toggle(ctx, task.ID)
			if err != nil {
				t.Fatalf("toggle: %v", err)
			}
			if toggled.UpdatedAt.Before(task.UpdatedAt) {
				t.Errorf("updatedAt went backwards: %v < %v", toggled.UpdatedAt, task.UpdatedAt)
			}
		})
	}
}

func TestWithIDGenerator(t *testing.T) {
	repo := NewMemory(WithIDGenerator(func() string { return "fixed-id" }), quiet())
	task, err := repo.Create(context.Background(), "Call mom", types.Pink)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID != "fixed-id" {
		t.Errorf("expected injected id, got %q", task.ID)
	}
}

func TestListOnEmptyRepository(t *testing.T) {
	for name, newRepo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			tasks, err := newRepo(t, quiet()).List(context.Background())
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if tasks == nil {
				t.Fatal("expected an empty slice, got nil")
			}
			if len(tasks) != 0 {
				t.Errorf("expected no tasks, got %+v", tasks)
			}
		})
	}
}

func TestGormRowMapping(t *testing.T) {
	ctx := context.Background()
	db := openGorm(t, sqlite.Open(":memory:"))
	clock := newFakeClock()
	clock.Set(time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC), time.Nanosecond)
	repo := NewGorm(db, WithClock(clock.Now), quiet())

	task, err := repo.Create(ctx, "Buy milk", types.Blue)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var row taskModel
	if err := db.First(&row, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("read row: %v", err)
	}
	if row.CreatedNano != task.CreatedAt.UnixNano() || row.UpdatedNano != task.UpdatedAt.UnixNano() {
		t.Errorf("timestamps not stored as nanoseconds: %+v", row)
	}
	if row.Color != "blue" || row.Completed {
		t.Errorf("unexpected row %+v", row)
	}

	// toggling back must write completed=false, not skip it as a zero value
	if _, err := repo.Toggle(ctx, task.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := repo.Toggle(ctx, task.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := db.First(&row, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("read row: %v", err)
	}
	if row.Completed {
		t.Error("expected completed=false stored after second toggle")
	}
	if !time.Unix(0, row.CreatedNano).Equal(task.CreatedAt) {
		t.Errorf("createdAt changed: %v", time.Unix(0, row.CreatedNano))
	}
}

func TestRedisEncoding(t *testing.T) {
	hashKey, orderKey := redisKeys("")
	if hashKey != "tasklist:tasks" || orderKey != "tasklist:tasks:order" {
		t.Errorf("unexpected default keys %q %q", hashKey, orderKey)
	}

	now := time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC)
	in := types.Task{ID: "abc", Title: "Buy milk", Color: types.Blue, Completed: true, CreatedAt: now, UpdatedAt: now.Add(time.Minute)}
	s, err := encodeTask(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := decodeTask(s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != in.ID || out.Title != in.Title || out.Color != in.Color || out.Completed != in.Completed ||
		!out.CreatedAt.Equal(in.CreatedAt) || !out.UpdatedAt.Equal(in.UpdatedAt) {
		t.Errorf("round trip mismatch: %+v != %+v", out, in)
	}
}
