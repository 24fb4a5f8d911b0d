package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/enfantsenjoie/eejsite/app/models"
	"github.com/enfantsenjoie/eejsite/app/repository"
	"github.com/enfantsenjoie/eejsite/internal/pkg/cache"
)

const (
	CacheKeyDonationsTotal = "statistics:donations:total"
	CacheKeyDonationsPaid  = "statistics:donations:paid"
	CacheKeyNewsPublished  = "statistics:news:published"
	CacheKeyEventsFuture   = "statistics:events:future"
	CacheKeyContactPending = "statistics:contact:pending"
	CacheExpiration        = 30 * time.Minute
)

// DashboardData holds the counters shown on the staff dashboard.
type DashboardData struct {
	TotalDonations  int
	PaidDonations   int
	PublishedNews   int
	FutureEvents    int
	PendingMessages int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached counters are stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached counters when the interval has
// elapsed.
func UpdateCacheIfNeeded(repos *repository.Repositories) {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(repos); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next read to refresh the cache. Called
// after admin mutations so the dashboard does not lag behind.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recounts everything and stores the values in redis.
func UpdateStatisticsCache(repos *repository.Repositories) error {
	totalDonations, err := repos.Donation.Count()
	if err != nil {
		return err
	}
	paidDonations, err := repos.Donation.CountByStatus(models.DonationStatusPaid)
	if err != nil {
		return err
	}
	publishedNews, err := repos.News.CountPublished()
	if err != nil {
		return err
	}
	futureEvents, err := repos.News.CountFutureEvents(time.Now())
	if err != nil {
		return err
	}
	pendingMessages, err := repos.Contact.CountPending()
	if err != nil {
		return err
	}

	values := map[string]int64{
		CacheKeyDonationsTotal: totalDonations,
		CacheKeyDonationsPaid:  paidDonations,
		CacheKeyNewsPublished:  publishedNews,
		CacheKeyEventsFuture:   futureEvents,
		CacheKeyContactPending: pendingMessages,
	}
	for key, value := range values {
		if err := cache.Set(key, strconv.FormatInt(value, 10), CacheExpiration); err != nil {
			log.Printf("Error caching %s: %v", key, err)
			return err
		}
	}

	return nil
}

// cachedCount reads a counter from the cache, falling back to the given
// recount on a miss.
func cachedCount(key string, recount func() (int64, error)) int {
	val, err := cache.Get(key)
	if err == nil {
		if count, err := strconv.ParseInt(val, 10, 64); err == nil {
			return int(count)
		}
		return 0
	}

	count, err := recount()
	if err != nil {
		log.Printf("Error counting for %s: %v", key, err)
		return 0
	}
	if err := cache.Set(key, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
		log.Printf("Error caching %s: %v", key, err)
	}
	return int(count)
}

// GetDashboardData returns all dashboard counters, refreshing the cache
// when it has gone stale.
func GetDashboardData(repos *repository.Repositories) DashboardData {
	UpdateCacheIfNeeded(repos)

	return DashboardData{
		TotalDonations: cachedCount(CacheKeyDonationsTotal, repos.Donation.Count),
		PaidDonations: cachedCount(CacheKeyDonationsPaid, func() (int64, error) {
			return repos.Donation.CountByStatus(models.DonationStatusPaid)
		}),
		PublishedNews: cachedCount(CacheKeyNewsPublished, repos.News.CountPublished),
		FutureEvents: cachedCount(CacheKeyEventsFuture, func() (int64, error) {
			return repos.News.CountFutureEvents(time.Now())
		}),
		PendingMessages: cachedCount(CacheKeyContactPending, repos.Contact.CountPending),
	}
}
