// Package manager wires the core components into the single top-level
// value the process runs: id.Generator, registry.Registry,
// workspace.Manager, voutput.Manager, wm.WindowManager, event.Bus, and
// the command.Server built on top of them. Nothing here implements
// domain logic itself — it is construct-then-run glue, the way the
// teacher's own Manager.New/Init/Run split worked around an X11
// connection instead of a command socket.
package manager

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/wegel/stilch-sub001/command"
	"github.com/wegel/stilch-sub001/config"
	"github.com/wegel/stilch-sub001/event"
	"github.com/wegel/stilch-sub001/id"
	"github.com/wegel/stilch-sub001/registry"
	"github.com/wegel/stilch-sub001/voutput"
	"github.com/wegel/stilch-sub001/wm"
	"github.com/wegel/stilch-sub001/workspace"
)

// Daemon is the process-wide state every goroutine in stilchd shares by
// reference: one Registry, one set of Workspaces, one set of virtual
// Outputs, one WindowManager facade over them, one event Bus, and the
// command Server that drives mutations through the facade.
type Daemon struct {
	Ids        *id.Generator
	Registry   *registry.Registry
	Workspaces *workspace.Manager
	Outputs    *voutput.Manager
	Bus        *event.Bus
	WM         *wm.WindowManager
	Dispatcher *command.Dispatcher
	Server     *command.Server
}

// New constructs a Daemon from cfg: every declared physical output is
// registered with the virtual-output manager (split per its Split
// declaration, if any), and every workspace default binds a workspace
// number to the output it should start visible on.
func New(cfg *config.Config) (*Daemon, error) {
	ids := &id.Generator{}
	reg := registry.New()
	ws := workspace.NewManager(cfg.Gaps.Inner, ids)
	vo := voutput.New(ids)
	bus := event.NewBus()
	facade := wm.New(reg, ws, vo, ids, bus)

	d := &Daemon{
		Ids:        ids,
		Registry:   reg,
		Workspaces: ws,
		Outputs:    vo,
		Bus:        bus,
		WM:         facade,
	}

	resolved, err := cfg.ResolveOutputs()
	if err != nil {
		return nil, fmt.Errorf("manager: resolve outputs: %w", err)
	}

	outputByName := make(map[string]voutput.Id, len(resolved))
	for _, o := range resolved {
		if o.Split != nil {
			created := vo.SplitPhysical(o.Physical, o.Region, *o.Split)
			if len(created) > 0 {
				outputByName[string(o.Physical)] = created[0]
			}
			for i, voID := range created {
				log.Info("virtual output created from split", "physical", o.Physical, "index", i, "output", voID)
			}
			continue
		}
		voID := vo.CreateFromPhysical(o.Physical, o.Region)
		outputByName[string(o.Physical)] = voID
		log.Info("virtual output created", "physical", o.Physical, "output", voID)
	}

	for number := 1; number <= id.MaxWorkspaces; number++ {
		outputName, ok := cfg.WorkspaceDefault(number)
		if !ok {
			continue
		}
		voID, ok := outputByName[outputName]
		if !ok {
			log.Warn("workspace default references unknown output", "workspace", number, "output", outputName)
			continue
		}
		wsID := config.WorkspaceID(number)
		if out := vo.Get(voID); out != nil {
			if err := ws.ShowWorkspaceOnOutput(wsID, voID, out.Region); err != nil {
				log.Warn("failed to show default workspace", "workspace", number, "output", outputName, "err", err)
				continue
			}
			vo.SetActiveWorkspace(voID, wsID)
		}
	}

	d.Dispatcher = command.NewDispatcher(facade)
	if len(vo.All()) > 0 {
		d.Dispatcher.ActiveOutput = vo.All()[0].ID
	}

	socketPath, err := config.SocketPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("manager: resolve socket path: %w", err)
	}
	d.Server = command.NewServer(socketPath, d.Dispatcher, bus)

	return d, nil
}

// Run blocks serving the command surface until ctx is canceled. On
// return the core has already stopped taking new events; callers
// should then tear down trailing resources (none are held outside the
// Daemon's own in-memory state, per spec.md §5's "the compositor is
// ephemeral").
func (d *Daemon) Run(ctx context.Context) error {
	return d.Server.Serve(ctx)
}
