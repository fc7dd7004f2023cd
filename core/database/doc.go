// Package database opens the GORM connection used for pass history.
//
// Two drivers are supported: sqlite (the default, a file next to the descriptor
// backups) and mysql for shared installations. Connect pings the database before
// returning, so a misconfigured connection fails fast and callers can continue without
// history.
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
package database
