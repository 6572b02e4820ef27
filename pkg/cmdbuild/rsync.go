package cmdbuild

import "gitlab.com/tozd/go/errors"

// ItemizeFormat is the per-item output format used for dry runs:
// one line per item, CODE:SIZE:PATH, parsed by pkg/stats.
const ItemizeFormat = "%i:%l:%n"

// 🔄 Rsync describes one directory sync. At most one side may be remote.
type Rsync struct {
	Source string // Source path (trailing slash transfers the contents)
	Dest   string // Destination path

	SourceRemote *Remote // Set when the source side is remote
	DestRemote   *Remote // Set when the destination side is remote

	Excludes []string // Patterns passed through to rsync, one --exclude each
	DryRun   bool
	Stats    bool // Request the machine-readable stats block
	Itemize  bool // Request the itemized change list (ItemizeFormat)
	Delete   bool // Remove destination files absent from the source
}

// Build returns the fully quoted rsync command line.
func (r Rsync) Build() (string, error) {
	if r.Source == "" {
		return "", missingField("rsync", "source")
	}
	if r.Dest == "" {
		return "", missingField("rsync", "dest")
	}
	if r.SourceRemote != nil && r.DestRemote != nil {
		return "", errors.Errorf("building rsync command: source and destination cannot both be remote")
	}

	args := []string{"rsync", "--archive", "--compress"}
	if r.DryRun {
		args = append(args, "--dry-run")
	}
	if r.Delete {
		args = append(args, "--delete")
	}
	if r.Stats {
		args = append(args, "--stats")
	}
	if r.Itemize {
		args = append(args, "--out-format="+ItemizeFormat)
	}
	for _, p := range r.Excludes {
		args = append(args, "--exclude="+p)
	}

	source, dest := r.Source, r.Dest
	if remote := r.remoteSide(); remote != nil {
		if err := remote.validate("rsync"); err != nil {
			return "", err
		}
		args = append(args, "-e", sshTransport(remote))
		if r.SourceRemote != nil {
			source = remote.userHost() + ":" + source
		} else {
			dest = remote.userHost() + ":" + dest
		}
	}

	args = append(args, source, dest)
	return join(args), nil
}

func (r Rsync) remoteSide() *Remote {
	if r.SourceRemote != nil {
		return r.SourceRemote
	}
	return r.DestRemote
}

// sshTransport renders the remote-shell program rsync invokes. The value is
// a single argument; quoting happens when the whole line is serialized.
func sshTransport(remote *Remote) string {
	args := []string{"ssh", "-p", remote.port()}
	if remote.Key != "" {
		args = append(args, "-i", remote.Key)
	}
	return join(args)
}
