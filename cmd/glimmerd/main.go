// Command glimmerd is the reference server binary: it wires
// server/config, server/world, server/entity, server/session and
// server/player into a single listening process. The protocol
// implementation those packages provide has no runtime dependency on
// this package; glimmerd is just one way to host it.
package main

import (
	"context"
	"net"
	"strconv"

	"github.com/glimmermc/glimmer/server/config"
	"github.com/glimmermc/glimmer/server/entity"
	"github.com/glimmermc/glimmer/server/player"
	"github.com/glimmermc/glimmer/server/session"
	"github.com/glimmermc/glimmer/server/world"
	"github.com/glimmermc/glimmer/server/world/storage"
	"github.com/glimmermc/glimmer/server/world/worldgen"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	log := logrus.New()

	root := &cobra.Command{
		Use:   "glimmerd",
		Short: "run a Minecraft Java Edition 1.20.1 server",
	}
	root.AddCommand(serveCmd(log))
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func serveCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start accepting connections",
		Run: func(cmd *cobra.Command, args []string) {
			configPath, _ := cmd.Flags().GetString("config")
			if err := serve(log, configPath); err != nil {
				log.Fatal(err)
			}
		},
	}
	cmd.Flags().String("config", "config.toml", "path to the server's TOML configuration file")
	return cmd
}

func serve(log *logrus.Logger, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	preset := worldgen.DefaultPreset()
	if cfg.World.PresetPath != "" {
		p, err := worldgen.LoadPreset(cfg.World.PresetPath)
		if err != nil {
			return err
		}
		preset = p
	}

	var worldOpts []world.Option
	if cfg.World.StorePath != "" {
		st, err := storage.Open(cfg.World.StorePath)
		if err != nil {
			return err
		}
		defer st.Close()
		worldOpts = append(worldOpts, world.WithStore(st))
	}

	w := world.New(worldgen.NewFlat(preset), worldOpts...)
	obs := entity.NewObserverManager()
	store := entity.NewStore(obs)
	mgr := player.NewManager(w, store, obs)

	statusJSON := func() string {
		return `{"version":{"name":"1.20.1","protocol":763},"players":{"max":` +
			strconv.FormatInt(int64(cfg.Server.MaxPlayers), 10) + `,"online":0},"description":{"text":"` + cfg.Server.MOTD + `"}}`
	}

	table := session.DefaultHandlers(statusJSON, mgr.OnEnterPlay)
	mgr.RegisterHandlers(table)

	ln, err := net.Listen("tcp", cfg.Server.ListenAddress)
	if err != nil {
		return err
	}
	defer ln.Close()
	log.Infof("glimmerd: listening on %s", cfg.Server.ListenAddress)

	return acceptLoop(context.Background(), ln, table, log)
}

func acceptLoop(ctx context.Context, ln net.Listener, table *session.HandlerTable, log *logrus.Logger) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go func() {
			entry := log.WithField("remote", conn.RemoteAddr())
			s := session.NewSession(conn, table, entry)
			if err := s.Run(ctx); err != nil {
				entry.Debugf("session ended: %v", err)
			}
			s.Close()
		}()
	}
}
