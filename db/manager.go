package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"

	"thunderbuddy/config"
	"thunderbuddy/models"
)

// Manager - явно сконструированный хэндл хранилища. Открывается на старте
// процесса, закрывается на остановке, передается в сторы через конструкторы.
type Manager struct {
	orm *gorm.DB
}

func dsnFromConfig(dbConf config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dbConf.Host, dbConf.Port, dbConf.User, dbConf.Password, dbConf.Name,
	)
}

func Connect(conf *config.ConfigSchema) (*Manager, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is not loaded")
	}
	if conf.Databases.Master.Host == "" {
		return nil, fmt.Errorf("master database configuration is missing")
	}

	masterDSN := dsnFromConfig(conf.Databases.Master)
	replicaDialectors := make([]gorm.Dialector, 0, len(conf.Databases.Replicas))
	for _, r := range conf.Databases.Replicas {
		replicaDialectors = append(replicaDialectors, postgres.Open(dsnFromConfig(r)))
	}

	orm, err := gorm.Open(postgres.Open(masterDSN), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
			NoLowerCase:   false,
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if len(replicaDialectors) > 0 {
		err = orm.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicaDialectors,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, err
		}
	}

	m := &Manager{orm: orm}
	if err := m.Migrate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewWithORM оборачивает готовое подключение (sqlite в тестах)
func NewWithORM(orm *gorm.DB) *Manager {
	return &Manager{orm: orm}
}

func (m *Manager) Migrate() error {
	return m.orm.AutoMigrate(
		&models.UserAccount{},
		&models.Friendship{},
		&models.Group{},
		&models.Notification{},
	)
}

// Read возвращает подключение для чтения (реплики)
func (m *Manager) Read(ctx context.Context) *gorm.DB {
	return m.orm.WithContext(ctx).Clauses(dbresolver.Read)
}

// Write возвращает подключение для записи (мастер)
func (m *Manager) Write(ctx context.Context) *gorm.DB {
	return m.orm.WithContext(ctx).Clauses(dbresolver.Write)
}

func (m *Manager) Close() error {
	sqlDB, err := m.orm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
