package database

import (
	"fmt"
	"log"
	"sync"

	"kardexplus/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

var (
	db      *gorm.DB
	dbMutex sync.Mutex
)

// Connect opens the application database using the configured dialect and
// keeps the handle for GetDB.
func Connect() (*gorm.DB, error) {
	dbMutex.Lock()
	defer dbMutex.Unlock()

	if db != nil {
		return db, nil
	}

	dialector, err := getDialector(config.DBName)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", config.DBName, err)
	}

	db = conn
	return db, nil
}

// GetDB returns the open connection. Connect must have been called first.
func GetDB() *gorm.DB {
	if db == nil {
		log.Fatal("database connection not initialized, call database.Connect first")
	}
	return db
}

func getDialector(dbName string) (gorm.Dialector, error) {
	switch config.DBDialect {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return mysql.Open(dsn), nil
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return sqlserver.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, dbName, config.DBPort)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DIALECT: %s", config.DBDialect)
	}
}

// EnsureDatabaseExists connects to the server without a database selected and
// creates the application database if missing.
func EnsureDatabaseExists(dbName string) {
	var conn *gorm.DB
	var err error

	switch config.DBDialect {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort)
		conn, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=master",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort)
		conn, err = gorm.Open(sqlserver.Open(dsn), &gorm.Config{})
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, config.DBPort)
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		log.Fatalf("Unsupported DB_DIALECT: %s", config.DBDialect)
	}

	if err != nil {
		log.Fatalf("Failed to connect to DB server: %v", err)
	}

	switch config.DBDialect {
	case "mysql":
		conn.Exec("CREATE DATABASE IF NOT EXISTS " + dbName)
	case "mssql":
		conn.Exec("IF DB_ID('" + dbName + "') IS NULL CREATE DATABASE " + dbName)
	case "postgres":
		conn.Exec("CREATE DATABASE " + dbName)
	}
}
