package cmdbuild

// 🖥️ SSHExec wraps an arbitrary inner command in a remote-shell invocation.
// The inner command travels as a single quoted argument.
type SSHExec struct {
	Remote  *Remote
	Command string   // Fully built inner command line
	Options []string // Extra -o options, e.g. "BatchMode=yes"
}

// Build returns the fully quoted ssh command line. ssh takes its port as
// lowercase -p; scp's capital -P lives in SCP.Build.
func (s SSHExec) Build() (string, error) {
	if err := s.Remote.validate("ssh"); err != nil {
		return "", err
	}
	if s.Command == "" {
		return "", missingField("ssh", "command")
	}

	args := []string{"ssh", "-p", s.Remote.port()}
	if s.Remote.Key != "" {
		args = append(args, "-i", s.Remote.Key)
	}
	for _, o := range s.Options {
		args = append(args, "-o", o)
	}
	args = append(args, s.Remote.userHost(), s.Command)
	return join(args), nil
}

// Direction says which way an SCP copy moves relative to the local machine.
type Direction int

const (
	Upload   Direction = iota // Local path to remote path
	Download                  // Remote path to local path
)

// 📬 SCP copies a single file to or from a remote endpoint.
type SCP struct {
	Remote     *Remote
	LocalPath  string
	RemotePath string
	Direction  Direction
}

// Build returns the fully quoted scp command line. Note the port flag: scp
// uses -P (capital), unlike ssh's -p.
func (s SCP) Build() (string, error) {
	if err := s.Remote.validate("scp"); err != nil {
		return "", err
	}
	if s.LocalPath == "" {
		return "", missingField("scp", "local path")
	}
	if s.RemotePath == "" {
		return "", missingField("scp", "remote path")
	}

	args := []string{"scp", "-P", s.Remote.port()}
	if s.Remote.Key != "" {
		args = append(args, "-i", s.Remote.Key)
	}

	remotePath := s.Remote.userHost() + ":" + s.RemotePath
	if s.Direction == Upload {
		args = append(args, s.LocalPath, remotePath)
	} else {
		args = append(args, remotePath, s.LocalPath)
	}
	return join(args), nil
}
