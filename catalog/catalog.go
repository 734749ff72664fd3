// Package catalog loads the read-only process and user catalogs from
// CSV files. A missing file is an empty catalog, not an error.
package catalog

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/Praveen5612/skill-survey-bot/pkg/logger"
)

// Process is one row of the process catalog.
type Process struct {
	ID          int    `json:"process_id"`
	Name        string `json:"process_name"`
	Description string `json:"description"`
	Industry    string `json:"industry"`
}

// User is one row of the user catalog.
type User struct {
	ID    string `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Catalog caches both catalogs in memory. Reload rereads the files;
// the watcher (watch.go) calls it when the backing files change.
type Catalog struct {
	processFile string
	userFile    string

	mu        sync.RWMutex
	processes []Process
	users     []User
}

// New loads both catalogs once and returns the cache.
func New(processFile, userFile string) *Catalog {
	c := &Catalog{processFile: processFile, userFile: userFile}
	c.Reload()
	return c
}

// Reload rereads both CSV files, replacing the cached rows.
func (c *Catalog) Reload() {
	processes := readProcesses(c.processFile)
	users := readUsers(c.userFile)

	c.mu.Lock()
	c.processes = processes
	c.users = users
	c.mu.Unlock()
}

// Processes returns the cached process rows.
func (c *Catalog) Processes() []Process {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.processes
}

// Users returns the cached user rows.
func (c *Catalog) Users() []User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.users
}

// ProcessByName looks up a process by its exact name.
func (c *Catalog) ProcessByName(name string) (Process, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.processes {
		if p.Name == name {
			return p, true
		}
	}
	return Process{}, false
}

// UserByEmail looks up a user by email.
func (c *Catalog) UserByEmail(email string) (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, u := range c.users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

// readRows parses a CSV file into header-keyed rows. Missing file or
// unparsable content degrades to no rows.
func readRows(path string) []map[string]string {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Sugar.Warnf("Cannot open catalog %s: %v", path, err)
		}
		return nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		logger.Sugar.Warnf("Cannot parse catalog %s: %v", path, err)
		return nil
	}
	if len(records) < 2 {
		return nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[strings.TrimSpace(col)] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func readProcesses(path string) []Process {
	var processes []Process
	for _, row := range readRows(path) {
		id, _ := strconv.Atoi(row["ProcessID"])
		processes = append(processes, Process{
			ID:          id,
			Name:        row["ProcessName"],
			Description: row["Description"],
			Industry:    row["Industry"],
		})
	}
	return processes
}

func readUsers(path string) []User {
	var users []User
	for _, row := range readRows(path) {
		users = append(users, User{
			ID:    row["UserID"],
			Name:  row["Name"],
			Email: row["Email"],
			Role:  row["Role"],
		})
	}
	return users
}
