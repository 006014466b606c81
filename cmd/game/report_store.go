package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"VillageDefense/internal/shared/infrastructure/db"
	"VillageDefense/internal/shared/infrastructure/mongo"
	"VillageDefense/internal/shared/logs"
	"VillageDefense/internal/shared/serverconfig"
	"VillageDefense/internal/village/app/port"
	"VillageDefense/internal/village/infra/persistence/memory"
	"VillageDefense/internal/village/infra/persistence/mongodb"
	"VillageDefense/internal/village/infra/persistence/mysql"
)

const (
	storeMemory  = "memory"
	storeMongoDB = "mongodb"
	storeMySQL   = "mysql"
)

// openReportRepo 按 game.report_store 选战报存储，返回的 close 负责断开连接。
func openReportRepo(ctx context.Context, conf serverconfig.Config) (port.ReportRepository, func(), error) {
	switch conf.Game.ReportStore {
	case "", storeMemory:
		return memory.NewReportRepository(), func() {}, nil
	case storeMongoDB:
		client, err := mongo.Open(ctx, conf.MongoDB, logs.Logger())
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logs.Warn("disconnect mongodb failed", zap.Error(err))
			}
		}
		return mongodb.NewReportRepository(client.Database(conf.MongoDB.Database)), closeFn, nil
	case storeMySQL:
		gormDB, err := db.Open(conf.MySQL)
		if err != nil {
			return nil, nil, err
		}
		repo := mysql.NewReportRepo(gormDB)
		if err := repo.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("migrate report table: %w", err)
		}
		closeFn := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repo, closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown report store %q", conf.Game.ReportStore)
}
