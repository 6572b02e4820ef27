package cmdbuild

import "strconv"

// 🗄️ DB carries the credentials a database command is built from.
type DB struct {
	Name     string
	User     string
	Password string // When empty, no password flag is emitted at all
	Host     string
	Port     int // 0 means the server default
	Charset  string
}

func (db DB) validate(command string) error {
	if db.Name == "" {
		return missingField(command, "database.name")
	}
	if db.User == "" {
		return missingField(command, "database.user")
	}
	if db.Host == "" {
		return missingField(command, "database.host")
	}
	return nil
}

// args renders the connection flags shared by mysqldump and mysql.
// An empty password emits no flag: a bare --password would make the client
// prompt (or read the next argument), which is worse than omitting it.
func (db DB) args() []string {
	args := []string{"--host=" + db.Host}
	if db.Port != 0 {
		args = append(args, "--port="+strconv.Itoa(db.Port))
	}
	args = append(args, "--user="+db.User)
	if db.Password != "" {
		args = append(args, "--password="+db.Password)
	}
	if db.Charset != "" {
		args = append(args, "--default-character-set="+db.Charset)
	}
	return args
}

// 📤 Mysqldump exports a database to a file, optionally gzip-compressed.
type Mysqldump struct {
	DB         DB
	OutputPath string
	Compress   bool
}

// Build returns the fully quoted export command line. The durability flags
// keep the export consistent without blocking writers on a live,
// read-heavy database: a single consistent snapshot, row streaming instead
// of full-table buffering, and no table locks.
func (m Mysqldump) Build() (string, error) {
	if err := m.DB.validate("mysqldump"); err != nil {
		return "", err
	}
	if m.OutputPath == "" {
		return "", missingField("mysqldump", "output path")
	}

	args := []string{"mysqldump"}
	args = append(args, m.DB.args()...)
	args = append(args,
		"--single-transaction",
		"--quick",
		"--lock-tables=false",
		m.DB.Name,
	)

	line := join(args)
	if m.Compress {
		return line + " | gzip > " + join([]string{m.OutputPath}), nil
	}
	return line + " > " + join([]string{m.OutputPath}), nil
}

// 📥 MysqlImport loads a dump file into a database.
type MysqlImport struct {
	DB         DB
	InputPath  string
	Compressed bool // Input is gzip-compressed
}

// Build returns the fully quoted import command line.
func (m MysqlImport) Build() (string, error) {
	if err := m.DB.validate("mysql"); err != nil {
		return "", err
	}
	if m.InputPath == "" {
		return "", missingField("mysql", "input path")
	}

	args := []string{"mysql"}
	args = append(args, m.DB.args()...)
	args = append(args, m.DB.Name)

	line := join(args)
	if m.Compressed {
		return "gunzip -c " + join([]string{m.InputPath}) + " | " + line, nil
	}
	return line + " < " + join([]string{m.InputPath}), nil
}
