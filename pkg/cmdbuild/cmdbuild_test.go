package cmdbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRsync_Build(t *testing.T) {
	tests := []struct {
		name    string
		req     Rsync
		want    string
		wantErr string
	}{
		{
			name: "local_to_local",
			req: Rsync{
				Source: "/src/",
				Dest:   "/dst",
			},
			want: "rsync --archive --compress /src/ /dst",
		},
		{
			name: "push_to_remote_with_port_and_key",
			req: Rsync{
				Source:     "/var/www/local/",
				Dest:       "/var/www/example",
				DestRemote: &Remote{Host: "example.com", User: "deploy", Port: 2222, Key: "/home/me/.ssh/id_deploy"},
			},
			want: "rsync --archive --compress -e 'ssh -p 2222 -i /home/me/.ssh/id_deploy' /var/www/local/ deploy@example.com:/var/www/example",
		},
		{
			name: "pull_from_remote_default_port",
			req: Rsync{
				Source:       "/var/www/example/",
				Dest:         "/var/www/local",
				SourceRemote: &Remote{Host: "example.com", User: "deploy"},
			},
			want: "rsync --archive --compress -e 'ssh -p 22' deploy@example.com:/var/www/example/ /var/www/local",
		},
		{
			name: "dry_run_with_stats_and_itemize",
			req: Rsync{
				Source:  "/src/",
				Dest:    "/dst",
				DryRun:  true,
				Stats:   true,
				Itemize: true,
			},
			want: "rsync --archive --compress --dry-run --stats --out-format=%i:%l:%n /src/ /dst",
		},
		{
			name: "excludes_are_individually_quoted",
			req: Rsync{
				Source:   "/src/",
				Dest:     "/dst",
				Excludes: []string{".git/", "my file.txt", "*.log"},
			},
			want: `rsync --archive --compress --exclude=.git/ '--exclude=my file.txt' '--exclude=*.log' /src/ /dst`,
		},
		{
			name:    "missing_source",
			req:     Rsync{Dest: "/dst"},
			wantErr: `required field "source"`,
		},
		{
			name: "both_sides_remote",
			req: Rsync{
				Source:       "/a/",
				Dest:         "/b",
				SourceRemote: &Remote{Host: "a.example.com"},
				DestRemote:   &Remote{Host: "b.example.com"},
			},
			wantErr: "cannot both be remote",
		},
		{
			name: "remote_without_host",
			req: Rsync{
				Source:     "/a/",
				Dest:       "/b",
				DestRemote: &Remote{User: "deploy"},
			},
			wantErr: `required field "remote.host"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Build()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRsync_Deterministic(t *testing.T) {
	req := Rsync{
		Source:     "/src/",
		Dest:       "/dst",
		DestRemote: &Remote{Host: "example.com"},
		Excludes:   []string{".git/"},
	}
	first, err := req.Build()
	require.NoError(t, err)
	second, err := req.Build()
	require.NoError(t, err)
	assert.Equal(t, first, second, "same inputs must always produce the same command")
}

func TestSSHExec_Build(t *testing.T) {
	got, err := SSHExec{
		Remote:  &Remote{Host: "example.com", User: "deploy", Key: "/k"},
		Command: "mysql --user=deploy example < /tmp/dump.sql",
	}.Build()
	require.NoError(t, err)
	assert.Equal(t, "ssh -p 22 -i /k deploy@example.com 'mysql --user=deploy example < /tmp/dump.sql'", got)

	got, err = SSHExec{
		Remote:  &Remote{Host: "example.com", User: "deploy"},
		Command: "true",
		Options: []string{"BatchMode=yes", "ConnectTimeout=5"},
	}.Build()
	require.NoError(t, err)
	assert.Equal(t, "ssh -p 22 -o BatchMode=yes -o ConnectTimeout=5 deploy@example.com true", got)

	_, err = SSHExec{Remote: &Remote{Host: "example.com"}}.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required field "command"`)

	_, err = SSHExec{Command: "true"}.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required field "remote"`)
}

// scp takes its port as capital -P, unlike ssh's lowercase -p. Easy to
// miswire, so both builders are pinned here side by side.
func TestPortFlags_SSHVersusSCP(t *testing.T) {
	remote := &Remote{Host: "example.com", User: "deploy", Port: 2222}

	sshLine, err := SSHExec{Remote: remote, Command: "true"}.Build()
	require.NoError(t, err)
	assert.Contains(t, sshLine, "ssh -p 2222")
	assert.NotContains(t, sshLine, "-P")

	scpLine, err := SCP{Remote: remote, LocalPath: "/tmp/a", RemotePath: "/tmp/b", Direction: Upload}.Build()
	require.NoError(t, err)
	assert.Contains(t, scpLine, "scp -P 2222")
}

func TestSCP_Build(t *testing.T) {
	remote := &Remote{Host: "example.com", User: "deploy"}

	up, err := SCP{Remote: remote, LocalPath: "/tmp/dump.sql.gz", RemotePath: "/tmp/in.sql.gz", Direction: Upload}.Build()
	require.NoError(t, err)
	assert.Equal(t, "scp -P 22 /tmp/dump.sql.gz deploy@example.com:/tmp/in.sql.gz", up)

	down, err := SCP{Remote: remote, LocalPath: "/tmp/out.sql.gz", RemotePath: "/tmp/dump.sql.gz", Direction: Download}.Build()
	require.NoError(t, err)
	assert.Equal(t, "scp -P 22 deploy@example.com:/tmp/dump.sql.gz /tmp/out.sql.gz", down)

	_, err = SCP{Remote: remote, RemotePath: "/tmp/b"}.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required field "local path"`)
}

func TestMysqldump_Build(t *testing.T) {
	tests := []struct {
		name    string
		req     Mysqldump
		want    string
		wantErr string
	}{
		{
			name: "with_password_and_compression",
			req: Mysqldump{
				DB:         DB{Name: "example", User: "root", Password: "s3cret", Host: "127.0.0.1"},
				OutputPath: "/tmp/dump.sql.gz",
				Compress:   true,
			},
			want: "mysqldump --host=127.0.0.1 --user=root --password=s3cret --single-transaction --quick --lock-tables=false example | gzip > /tmp/dump.sql.gz",
		},
		{
			name: "no_password_emits_no_password_flag",
			req: Mysqldump{
				DB:         DB{Name: "example", User: "root", Host: "127.0.0.1"},
				OutputPath: "/tmp/dump.sql",
			},
			want: "mysqldump --host=127.0.0.1 --user=root --single-transaction --quick --lock-tables=false example > /tmp/dump.sql",
		},
		{
			name: "port_and_charset",
			req: Mysqldump{
				DB:         DB{Name: "example", User: "root", Host: "db.internal", Port: 3307, Charset: "utf8mb4"},
				OutputPath: "/tmp/dump.sql",
			},
			want: "mysqldump --host=db.internal --port=3307 --user=root --default-character-set=utf8mb4 --single-transaction --quick --lock-tables=false example > /tmp/dump.sql",
		},
		{
			name:    "missing_name",
			req:     Mysqldump{DB: DB{User: "root", Host: "h"}, OutputPath: "/tmp/d"},
			wantErr: `required field "database.name"`,
		},
		{
			name:    "missing_output",
			req:     Mysqldump{DB: DB{Name: "example", User: "root", Host: "h"}},
			wantErr: `required field "output path"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Build()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMysqldump_NoPasswordScenario(t *testing.T) {
	// Database config with name/user/host but no password: the export
	// command must contain no password flag at all, not an empty one.
	line, err := Mysqldump{
		DB:         DB{Name: "example", User: "root", Host: "127.0.0.1"},
		OutputPath: "/tmp/dump.sql",
	}.Build()
	require.NoError(t, err)
	assert.NotContains(t, line, "--password")
}

func TestMysqlImport_Build(t *testing.T) {
	plain, err := MysqlImport{
		DB:        DB{Name: "example", User: "root", Password: "pw", Host: "127.0.0.1"},
		InputPath: "/tmp/dump.sql",
	}.Build()
	require.NoError(t, err)
	assert.Equal(t, "mysql --host=127.0.0.1 --user=root --password=pw example < /tmp/dump.sql", plain)

	compressed, err := MysqlImport{
		DB:         DB{Name: "example", User: "root", Host: "127.0.0.1"},
		InputPath:  "/tmp/dump.sql.gz",
		Compressed: true,
	}.Build()
	require.NoError(t, err)
	assert.Equal(t, "gunzip -c /tmp/dump.sql.gz | mysql --host=127.0.0.1 --user=root example", compressed)
}

func TestSearchReplace_Build(t *testing.T) {
	got, err := SearchReplace{
		Path: "/var/www/example",
		From: "http://localhost:8080",
		To:   "https://example.com",
	}.Build()
	require.NoError(t, err)
	assert.Equal(t,
		"wp search-replace http://localhost:8080 https://example.com --path=/var/www/example --skip-columns=guid --all-tables",
		got)

	withExtra, err := SearchReplace{
		Path:        "/var/www/example",
		From:        "a",
		To:          "b",
		SkipColumns: []string{"guid", "user_email"},
	}.Build()
	require.NoError(t, err)
	assert.Contains(t, withExtra, "--skip-columns=guid,user_email")

	_, err = SearchReplace{From: "a", To: "b"}.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required field "path"`)
}

func TestQuoting_NoInjection(t *testing.T) {
	// A hostile configured value must never escape its argument.
	line, err := Rsync{
		Source:   "/src/",
		Dest:     "/dst; rm -rf /",
		Excludes: []string{"$(reboot)"},
	}.Build()
	require.NoError(t, err)
	assert.Contains(t, line, `'/dst; rm -rf /'`)
	assert.Contains(t, line, `'--exclude=$(reboot)'`)
}
