package handlers

import (
	"fmt"
	"time"

	"workmode-api/internal/cache"
	"workmode-api/internal/database"
	"workmode-api/internal/models"
)

// spaceOwnership memoizes positive search-space ownership checks. Every
// task endpoint re-verifies ownership, so a short TTL keeps the lookup off
// the hot path without holding a stale verdict for long.
var spaceOwnership = cache.NewSimpleCache[string, bool](cache.Options{ConcurrencySafe: true})

const spaceOwnershipTTL = time.Minute

// ensureSpaceOwned reports whether the search space exists and belongs to
// the user. Only positive results are cached; a miss is re-checked every time
// so newly created spaces become visible immediately.
func ensureSpaceOwned(spaceID uint, userID string) (bool, error) {
	key := fmt.Sprintf("%d:%s", spaceID, userID)
	if owned, hit := spaceOwnership.Get(key); hit {
		return owned, nil
	}

	var count int64
	if err := database.GetDB().Model(&models.SearchSpace{}).
		Where("id = ? AND user_id = ?", spaceID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		spaceOwnership.Set(key, true, spaceOwnershipTTL)
		return true, nil
	}
	return false, nil
}

// resetOwnershipCache clears memoized ownership verdicts. Tests swap the
// database out from under the package, so they call this between runs.
func resetOwnershipCache() {
	spaceOwnership.Clear()
}
