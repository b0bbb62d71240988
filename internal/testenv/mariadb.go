// mariadb.go
//
// Hierarchical asset aggregation and chart data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of fleetboard.
// fleetboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// fleetboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with fleetboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package testenv runs throwaway database containers for integration tests
// and local development.
package testenv

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/localnerve/fleetboard/internal/config"
)

const (
	defaultImage    = "mariadb:11"
	defaultDatabase = "fleetboard"
	defaultUser     = "fleetboard"
	defaultPassword = "fleetboard"
	rootPassword    = "fleetboard-root"
)

// MariaDBOptions configure StartMariaDB. Empty fields use defaults, or the
// DB_IMAGE, DB_DATABASE, DB_USER and DB_PASSWORD environment variables.
type MariaDBOptions struct {
	Image    string
	Database string
	User     string
	Password string
	// HostPort pins the published port, otherwise docker picks one
	HostPort string
	// Tmpfs keeps the data directory in memory
	Tmpfs bool
}

// MariaDB is a running MariaDB container
type MariaDB struct {
	Container testcontainers.Container
	Host      string
	Port      nat.Port
	Database  string
	User      string
	Password  string
	SessionID string
}

func orEnv(value, key, fallback string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(key); env != "" {
		return env
	}
	return fallback
}

// StartMariaDB starts a container and waits until it accepts queries
func StartMariaDB(ctx context.Context, opts MariaDBOptions) (*MariaDB, error) {
	m := &MariaDB{
		Database:  orEnv(opts.Database, "DB_DATABASE", defaultDatabase),
		User:      orEnv(opts.User, "DB_USER", defaultUser),
		Password:  orEnv(opts.Password, "DB_PASSWORD", defaultPassword),
		SessionID: uuid.New().String(),
	}

	tcpDbPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	hostConfigModifier := func(hostConfig *container.HostConfig) {
		if opts.Tmpfs {
			hostConfig.Tmpfs = map[string]string{"/var/lib/mysql": "rw"}
		}
		if opts.HostPort != "" {
			hostConfig.PortBindings = nat.PortMap{
				tcpDbPort: []nat.PortBinding{{HostIP: "0.0.0.0", HostPort: opts.HostPort}},
			}
		}
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        orEnv(opts.Image, "DB_IMAGE", defaultImage),
			ExposedPorts: []string{string(tcpDbPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": rootPassword,
				"MYSQL_DATABASE":      m.Database,
				"MYSQL_USER":          m.User,
				"MYSQL_PASSWORD":      m.Password,
			},
			Labels:             map[string]string{"fleetboard.session": m.SessionID},
			HostConfigModifier: hostConfigModifier,
			WaitingFor:         wait.ForListeningPort(tcpDbPort).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start MariaDB: %w", err)
	}
	m.Container = dbContainer

	if m.Host, err = dbContainer.Host(ctx); err != nil {
		m.Terminate(ctx)
		return nil, fmt.Errorf("failed to get MariaDB host: %w", err)
	}
	if m.Port, err = dbContainer.MappedPort(ctx, tcpDbPort); err != nil {
		m.Terminate(ctx)
		return nil, fmt.Errorf("failed to get MariaDB port: %w", err)
	}

	if err := m.waitReady(ctx, 30*time.Second); err != nil {
		m.Terminate(ctx)
		return nil, err
	}
	return m, nil
}

// waitReady pings until the server answers; the port opens before the
// server finishes initializing
func (m *MariaDB) waitReady(ctx context.Context, timeout time.Duration) error {
	db, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", m.User, m.Password, m.Host, m.Port.Port(), m.Database))
	if err != nil {
		return fmt.Errorf("failed to open MariaDB: %w", err)
	}
	defer db.Close()

	deadline := time.Now().Add(timeout)
	for {
		err = db.PingContext(ctx)
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("MariaDB not ready after %s: %w", timeout, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

// Config returns a database configuration pointing at the container
func (m *MariaDB) Config() *config.Config {
	return &config.Config{
		DataSource:        config.SourceDatabase,
		DBType:            "mariadb",
		DBHost:            m.Host,
		DBPort:            m.Port.Port(),
		DBDatabase:        m.Database,
		DBUser:            m.User,
		DBPassword:        m.Password,
		DBConnectionLimit: 5,
		DBLogLevel:        "warn",
		Location:          time.UTC,
	}
}

// Terminate stops and removes the container
func (m *MariaDB) Terminate(ctx context.Context) error {
	if m.Container == nil {
		return nil
	}
	return m.Container.Terminate(ctx)
}
