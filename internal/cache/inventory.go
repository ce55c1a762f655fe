package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix = "post:%d"
	FeedFirstPage = "feed:first"
)

const (
	PostTTL = 5 * time.Minute
	FeedTTL = 30 * time.Second
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateFeed drops the cached first feed page. Called on every post
// insert and delete; comment and like writes invalidate only the post
// detail since list counts tolerate the short feed TTL.
func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, FeedFirstPage)
}
