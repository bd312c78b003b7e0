package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	VinylKeyPrefix      = "vinyl:%d"
	VinylLikesKeyPrefix = "vinyl:%d:likes"
)

const (
	UserTTL       = 5 * time.Minute
	VinylTTL      = 30 * time.Minute
	VinylLikesTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func VinylKey(vinylID uint) string {
	return fmt.Sprintf(VinylKeyPrefix, vinylID)
}

func VinylLikesKey(vinylID uint) string {
	return fmt.Sprintf(VinylLikesKeyPrefix, vinylID)
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateVinyl(ctx context.Context, vinylID uint) {
	Invalidate(ctx, VinylKey(vinylID), VinylLikesKey(vinylID))
}

func InvalidateVinylLikes(ctx context.Context, vinylID uint) {
	Invalidate(ctx, VinylLikesKey(vinylID))
}
