package memory_test

import (
	"testing"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	"github.com/NastyaGoryachaya/termin-notifier/internal/repository/memory"
	"github.com/NastyaGoryachaya/termin-notifier/internal/repository/repotest"
)

func TestSubscriberRepo(t *testing.T) {
	t.Parallel()
	repotest.Run(t, func(t *testing.T) domain.SubscriberRepository {
		return memory.NewSubscriberRepo()
	})
}
