package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"estate-crm/config"
	"estate-crm/utils"
)

// Connector produces handles to the worksheets of the deployment's workbook
// resource. Opening the workbook is expensive, so both the resource and the
// per-worksheet handles are memoized for the lifetime of the process;
// repeated Connect calls for the same table never re-open the file.
type Connector struct {
	cfg    *config.Config
	logger *utils.Logger

	mu       sync.Mutex
	resource Resource
	tables   map[string]Table
}

// NewConnector creates a Connector. The workbook is opened lazily on the
// first Connect call.
func NewConnector(cfg *config.Config, logger *utils.Logger) *Connector {
	return &Connector{
		cfg:    cfg,
		logger: logger,
		tables: make(map[string]Table),
	}
}

// Connect returns the rows currently in the named table together with the
// table handle for subsequent append/delete calls. On any failure — missing
// credentials, missing workbook, missing worksheet — it returns an empty row
// set, a nil handle and ErrConnectionUnavailable; callers treat a nil handle
// as "writes unavailable" and must not crash.
func (c *Connector) Connect(table string) ([]map[string]string, Table, error) {
	tbl, err := c.table(table)
	if err != nil {
		c.logger.Warn("[store] %s unavailable: %v", table, err)
		return nil, nil, err
	}

	rows, err := tbl.Rows()
	if err != nil {
		c.logger.Warn("[store] read %s: %v", table, err)
		return nil, nil, fmt.Errorf("storage: read %q: %v: %w", table, err, ErrConnectionUnavailable)
	}
	return rows, tbl, nil
}

// table returns the memoized handle for the named worksheet, opening the
// workbook on first use.
func (c *Connector) table(name string) (Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tbl, ok := c.tables[name]; ok {
		return tbl, nil
	}

	if c.resource == nil {
		res, err := c.open()
		if err != nil {
			return nil, err
		}
		c.resource = res
	}

	tbl, err := c.resource.Table(name)
	if err != nil {
		return nil, err
	}
	c.tables[name] = tbl
	return tbl, nil
}

func (c *Connector) open() (Resource, error) {
	creds, err := ResolveCredentials(c.cfg.CredentialsFile, c.cfg.CredentialsEnv)
	if err != nil {
		return nil, err
	}

	retry := &utils.RetryConfig{
		MaxAttempts: c.cfg.MaxRetries,
		BaseDelay:   time.Duration(c.cfg.RetryDelayMs) * time.Millisecond,
		Logger:      c.logger,
	}

	wb, err := OpenWorkbook(creds.WorkbookPath(c.cfg.Resource), retry)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("[store] opened workbook %q", c.cfg.Resource)
	return wb, nil
}

// Close disposes the underlying resource. The Connector must not be used
// afterwards.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tables = make(map[string]Table)
	if c.resource == nil {
		return nil
	}
	err := c.resource.Close()
	c.resource = nil
	return err
}

// Unavailable reports whether err is the connection-unavailable condition.
func Unavailable(err error) bool {
	return errors.Is(err, ErrConnectionUnavailable)
}
