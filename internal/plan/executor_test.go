package plan

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/diskplan/internal/config"
)

// recordingRunner returns queued results and records every command.
// Once the queue is exhausted it keeps answering success.
type recordingRunner struct {
	results  []stepResult
	commands []string
}

type stepResult struct {
	output string
	code   int
	err    error
}

func (r *recordingRunner) Run(_ context.Context, command string) (string, int, error) {
	r.commands = append(r.commands, command)
	if len(r.results) == 0 {
		return "", 0, nil
	}
	res := r.results[0]
	r.results = r.results[1:]
	return res.output, res.code, res.err
}

type silentLogger struct{}

func (silentLogger) Printf(string, ...any) {}

func buildLVM(t *testing.T, existing ...string) *Plan {
	t.Helper()
	cfg := &config.Config{
		Device:        "/dev/sdc",
		VolumeGroup:   "data",
		LogicalVolume: "data01",
		Size:          "100G",
		FSType:        config.FSXFS,
	}
	cfg.Finalize()

	p, err := Build(context.Background(), cfg, &stubVGs{groups: existing})
	require.NoError(t, err)
	return p
}

// Scenario: plain ext4 device, dry run.
func TestExecute_DryRun_PlainDevice(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{Device: "/dev/sdb", FSType: config.FSExt4}
	cfg.Finalize()
	p, err := Build(context.Background(), cfg, &stubVGs{})
	require.NoError(t, err)

	r := &recordingRunner{}
	var out bytes.Buffer
	e := &Executor{Runner: r, Out: &out, Log: silentLogger{}}

	res, err := e.Execute(context.Background(), p, false)

	require.NoError(t, err)
	assert.Equal(t, StatusDryRunDone, res.Status)
	assert.Empty(t, r.commands, "dry-run never touches the execution context")

	printed := out.String()
	assert.Contains(t, printed, "create physical volume on /dev/sdb")
	assert.Contains(t, printed, "create ext4 filesystem on /dev/sdb")
	assert.Contains(t, printed, "create /mnt/sdb and mount /dev/sdb")
	assert.Contains(t, printed, "append /mnt/sdb to /etc/fstab")
	assert.Contains(t, printed, "Dry-run")
}

// Scenario: new VG, LV, xfs, applied.
func TestExecute_Apply_RunsAllSteps(t *testing.T) {
	t.Parallel()
	p := buildLVM(t)
	require.Len(t, p.Steps, 6)

	r := &recordingRunner{}
	e := &Executor{Runner: r, Out: &bytes.Buffer{}, Log: silentLogger{}}

	res, err := e.Execute(context.Background(), p, true)

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)
	require.Len(t, r.commands, 6)
	assert.Equal(t, "pvcreate -y /dev/sdc", r.commands[0])
	assert.Equal(t, "vgcreate data /dev/sdc", r.commands[1])
	assert.Equal(t, "lvcreate --yes --name data01 --size 100G data", r.commands[2])
	assert.Equal(t, "mkfs.xfs -f /dev/data/data01", r.commands[3])
	assert.Equal(t, "mkdir -p /mnt/data01 && mount /dev/data/data01 /mnt/data01", r.commands[4])
	assert.Contains(t, r.commands[5], ">> /etc/fstab")
}

// Scenario: identical, but the VG already exists.
func TestExecute_Apply_ExistingVGExtends(t *testing.T) {
	t.Parallel()
	p := buildLVM(t, "data")

	var out bytes.Buffer
	r := &recordingRunner{}
	e := &Executor{Runner: r, Out: &out, Log: silentLogger{}}

	_, err := e.Execute(context.Background(), p, true)

	require.NoError(t, err)
	require.Len(t, r.commands, 6)
	assert.Equal(t, "vgextend data /dev/sdc", r.commands[1])
	assert.Contains(t, out.String(), "extend volume group data")
	assert.NotContains(t, out.String(), "create volume group")
}

// Scenario: wipe requested but not applied.
func TestExecute_DryRun_WipeShownNotRun(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{Device: "/dev/sdb", Wipe: true}
	cfg.Finalize()
	p, err := Build(context.Background(), cfg, &stubVGs{})
	require.NoError(t, err)

	assert.Equal(t, StepWipeTable, p.Steps[0].Kind)
	assert.Equal(t, StepWipeSignatures, p.Steps[1].Kind)

	r := &recordingRunner{}
	var out bytes.Buffer
	e := &Executor{Runner: r, Out: &out, Log: silentLogger{}}

	res, err := e.Execute(context.Background(), p, false)

	require.NoError(t, err)
	assert.Equal(t, StatusDryRunDone, res.Status)
	assert.Empty(t, r.commands)
	assert.Contains(t, out.String(), "erase partition-table signatures")
}

// Scenario: step 3 of 6 fails during apply.
func TestExecute_FailFast(t *testing.T) {
	t.Parallel()
	p := buildLVM(t)

	r := &recordingRunner{results: []stepResult{
		{},
		{},
		{output: "  Volume group \"data\" has insufficient free space", code: 5},
	}}
	e := &Executor{Runner: r, Out: &bytes.Buffer{}, Log: silentLogger{}}

	res, err := e.Execute(context.Background(), p, true)

	require.Error(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, 3, res.FailedStep)
	assert.Len(t, r.commands, 3, "steps 4-6 are never attempted")

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 3, stepErr.Index)
	assert.Equal(t, 5, stepErr.ExitCode)
	assert.Contains(t, stepErr.Output, "insufficient free space", "output surfaces verbatim")
	assert.Contains(t, stepErr.Error(), "insufficient free space")
}

func TestExecute_TransportError(t *testing.T) {
	t.Parallel()
	p := buildLVM(t)

	r := &recordingRunner{results: []stepResult{
		{err: errors.New("connection reset")},
	}}
	e := &Executor{Runner: r, Out: &bytes.Buffer{}, Log: silentLogger{}}

	res, err := e.Execute(context.Background(), p, true)

	require.Error(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, 1, res.FailedStep)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.ErrorContains(t, stepErr, "connection reset")
}

func TestExecute_CancelledContextStopsDispatch(t *testing.T) {
	t.Parallel()
	p := buildLVM(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &recordingRunner{}
	e := &Executor{Runner: r, Out: &bytes.Buffer{}, Log: silentLogger{}}

	res, err := e.Execute(ctx, p, true)

	require.Error(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Empty(t, r.commands, "no step is dispatched after cancellation")
}

func TestExecute_AlwaysPrintsPlan(t *testing.T) {
	t.Parallel()
	p := buildLVM(t)

	for _, apply := range []bool{false, true} {
		var out bytes.Buffer
		e := &Executor{Runner: &recordingRunner{}, Out: &out, Log: silentLogger{}}

		_, err := e.Execute(context.Background(), p, apply)

		require.NoError(t, err)
		for _, step := range p.Steps {
			assert.Contains(t, out.String(), step.Description())
		}
	}
}

func TestStepCommands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		step Step
		want string
	}{
		{Step{Kind: StepWipeTable, Device: "/dev/sdb"}, "sgdisk --zap-all /dev/sdb"},
		{Step{Kind: StepWipeSignatures, Device: "/dev/sdb"}, "wipefs --all /dev/sdb"},
		{Step{Kind: StepCreatePV, Device: "/dev/sdb"}, "pvcreate -y /dev/sdb"},
		{Step{Kind: StepCreateVG, VolumeGroup: "data", Device: "/dev/sdb"}, "vgcreate data /dev/sdb"},
		{Step{Kind: StepExtendVG, VolumeGroup: "data", Device: "/dev/sdb"}, "vgextend data /dev/sdb"},
		{Step{Kind: StepCreateLV, VolumeGroup: "data", LogicalVolume: "lv0", Size: "10G"}, "lvcreate --yes --name lv0 --size 10G data"},
		{Step{Kind: StepMakeFS, Target: "/dev/sdb", FSType: "xfs"}, "mkfs.xfs -f /dev/sdb"},
		{Step{Kind: StepMakeFS, Target: "/dev/sdb", FSType: "ext4"}, "mkfs.ext4 -F /dev/sdb"},
		{Step{Kind: StepMount, Target: "/dev/sdb", MountPoint: "/mnt/sdb"}, "mkdir -p /mnt/sdb && mount /dev/sdb /mnt/sdb"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.step.Command())
	}
}

func TestStepFstab_GuardedAppend(t *testing.T) {
	t.Parallel()
	s := Step{Kind: StepFstab, Target: "/dev/sdb", MountPoint: "/mnt/sdb", FSType: "xfs"}

	cmd := s.Command()
	assert.Contains(t, cmd, "grep -q '^/dev/sdb '")
	assert.Contains(t, cmd, "/dev/sdb /mnt/sdb xfs defaults,nofail 0 2")
}
