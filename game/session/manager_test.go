package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/klondike/game/engine"
	"github.com/wricardo/klondike/game/service"
)

func testOptions() engine.Options {
	return engine.Options{Seed: 42}
}

func TestManager_Create(t *testing.T) {
	manager := NewManager(nil)

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", testOptions())
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Engine == nil {
			t.Error("Expected engine to be initialized")
		}
		if session.Engine.Seed() != 42 {
			t.Errorf("Expected seed 42, got %d", session.Engine.Seed())
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", testOptions())
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != idLength {
			t.Errorf("Expected %d-character ID, got '%s'", idLength, session.ID)
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", testOptions())
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", testOptions())
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := manager.Create("bad-seed", engine.Options{Seed: -1})
		if err == nil {
			t.Error("Expected error for negative seed")
		}
	})

	t.Run("invalid ID", func(t *testing.T) {
		_, err := manager.Create("a/b", testOptions())
		if !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID, got %v", err)
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager(nil)
	created, err := manager.Create("MySession", testOptions())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("MySession")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session != created {
			t.Error("Expected the same session instance")
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		if _, err := manager.Get("mysession"); err != nil {
			t.Errorf("Expected case-insensitive match, got %v", err)
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		_, err := manager.Get("missing")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
		if !errors.Is(err, service.ErrSessionNotFound) {
			t.Error("Expected the service sentinel")
		}
	})
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager(nil)
	manager.Create("del-me", testOptions())

	t.Run("case-insensitive delete", func(t *testing.T) {
		if err := manager.Delete("DEL-ME"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if manager.Count() != 0 {
			t.Errorf("Expected 0 sessions, got %d", manager.Count())
		}
	})

	t.Run("delete non-existent session", func(t *testing.T) {
		if err := manager.Delete("del-me"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_List(t *testing.T) {
	manager := NewManager(nil)
	if len(manager.List()) != 0 {
		t.Error("Expected empty list initially")
	}

	ids := []string{"one", "two", "three"}
	for _, id := range ids {
		if _, err := manager.Create(id, testOptions()); err != nil {
			t.Fatalf("Failed to create %s: %v", id, err)
		}
	}

	sessions := manager.List()
	if len(sessions) != len(ids) {
		t.Fatalf("Expected %d sessions, got %d", len(ids), len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].CreatedAt.Before(sessions[i-1].CreatedAt) {
			t.Error("Expected sessions ordered by creation time")
		}
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager(nil)
	old, _ := manager.Create("old", testOptions())
	manager.Create("fresh", testOptions())

	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 removed session, got %d", removed)
	}
	if _, err := manager.Get("old"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected old session to be gone")
	}
	if _, err := manager.Get("fresh"); err != nil {
		t.Error("Expected fresh session to remain")
	}
}

func TestManager_RunCleanup(t *testing.T) {
	manager := NewManager(nil)
	old, _ := manager.Create("old", testOptions())
	old.LastAccessedAt = time.Now().Add(-time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.RunCleanup(ctx, 5*time.Millisecond, time.Minute)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for manager.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if manager.Count() != 0 {
		t.Errorf("Expected idle session to be expired, %d left", manager.Count())
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager(nil)
	session, _ := manager.Create("touch", testOptions())
	before := time.Now().Add(-time.Minute)
	session.LastAccessedAt = before

	if err := manager.UpdateLastAccessed("TOUCH"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !session.LastAccessedAt.After(before) {
		t.Error("Expected last accessed time to move forward")
	}
	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager(nil)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := manager.Create("", testOptions())
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			manager.Get(session.ID)
			manager.UpdateLastAccessed(session.ID)
			manager.List()
		}()
	}
	wg.Wait()

	if manager.Count() != 20 {
		t.Errorf("Expected 20 sessions, got %d", manager.Count())
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager(nil)
	a, _ := manager.Create("a", testOptions())
	b, _ := manager.Create("b", testOptions())

	a.Engine.DrawFromStock()

	if a.Engine.Discard().NumOfCards() != 1 {
		t.Error("Expected one card on a's discard pile")
	}
	if !b.Engine.Discard().IsEmpty() {
		t.Error("Drawing in one session changed another")
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager(nil)
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		session, err := manager.Create("", testOptions())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[session.ID] {
			t.Fatalf("Duplicate ID %s", session.ID)
		}
		seen[session.ID] = true
		if strings.Trim(session.ID, "0123456789abcdef") != "" {
			t.Errorf("Expected lowercase hex ID, got %s", session.ID)
		}
	}
}
