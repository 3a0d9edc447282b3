package concurrency_test

import (
	"sync"
	"testing"
	"time"

	"github.com/ngothanh/maat-hash/pkg/concurrency"
	"github.com/ngothanh/maat-hash/pkg/test"
)

type MutexSuite struct {
	*test.Suite
}

func TestMutexSuite(t *testing.T) {
	test.Run(t, &MutexSuite{Suite: test.NewSuite()})
}

func (s *MutexSuite) TestSmartMutexExcludesConcurrentAccess() {
	m := concurrency.NewSmartMutex(concurrency.MutexConfig{Name: "counter"})
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock()
			defer m.Unlock()
			counter++
		}()
	}
	wg.Wait()

	s.Equal(100, counter)
}

func (s *MutexSuite) TestSmartRWMutexAllowsConcurrentReaders() {
	m := concurrency.NewSmartRWMutex(concurrency.MutexConfig{Name: "data"})

	m.RLock()
	defer m.RUnlock()

	done := make(chan struct{})
	go func() {
		m.RLock()
		defer m.RUnlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("second RLock should not block on an already-held RLock")
	}
}

func (s *MutexSuite) TestSmartRWMutexWriteExcludesReaders() {
	m := concurrency.NewSmartRWMutex(concurrency.MutexConfig{Name: "data"})
	m.Lock()

	acquired := make(chan struct{})
	go func() {
		m.RLock()
		close(acquired)
		m.RUnlock()
	}()

	select {
	case <-acquired:
		s.Fail("RLock should not succeed while the write lock is held")
	case <-time.After(50 * time.Millisecond):
	}

	m.Unlock()
	<-acquired
}
