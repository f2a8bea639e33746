package shutdown

import (
	"sync"
	"testing"
	"time"
)

func TestGuardRunsLIFOOnce(t *testing.T) {
	g := NewGuard()
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		g.Defer(func() { order = append(order, i) })
	}
	g.Run()
	g.Run()
	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Fatalf("order = %v, want [3 2 1]", order)
	}
}

func TestGuardConcurrentRun(t *testing.T) {
	g := NewGuard()
	var mu sync.Mutex
	calls := 0
	g.Defer(func() {
		time.Sleep(10 * time.Millisecond)
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Run()
			// Every caller returns only after cleanup finished.
			mu.Lock()
			defer mu.Unlock()
			if calls != 1 {
				t.Errorf("calls = %d after Run returned", calls)
			}
		}()
	}
	wg.Wait()
}

func TestGuardQuit(t *testing.T) {
	g := NewGuard()
	g.Quit()
	g.Quit()
	select {
	case <-g.Requested():
	case <-time.After(time.Second):
		t.Fatal("Requested not closed after Quit")
	}
}

func TestGuardDone(t *testing.T) {
	g := NewGuard()
	select {
	case <-g.Done():
		t.Fatal("Done closed before Run")
	default:
	}
	g.Run()
	<-g.Done()
}
