package metric

import (
	"context"
	"time"

	"aurora/src-server/model"
	"aurora/src-server/utils"
)

// latency of a read that matches no rows, as a storage health probe
func databaseEmptyRead(as *utils.AppState) (time.Duration, error) {
	startTimer := time.Now()
	if _, err := as.BunDB.
		NewSelect().
		Model((*model.Birthday)(nil)).
		Where("guild_id = ?", "").
		Count(context.Background()); err != nil {
		return 0, err
	}
	return time.Since(startTimer), nil
}
