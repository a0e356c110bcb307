package db

import "gorm.io/gorm"

// Database hands out the gorm handle shared by the postgres storage.
type Database interface {
	GetDB() *gorm.DB
	Close() error
}

type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }

func (g *GormDatabase) Close() error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
