package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/lightnet"
)

func main() {
	configPath := flag.String("config", "lightnet.yaml", "Network config file")
	levelPath := flag.String("level", "", "Level description file")
	ticks := flag.Int("ticks", 10000, "Maximum number of ticks to simulate")
	speed := flag.Float64("speed", 0.25, "Subject speed in world units per tick")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if err := run(*configPath, *levelPath, *ticks, float32(*speed), *debug); err != nil {
		fmt.Fprintln(os.Stderr, "lightnet-sim:", err)
		os.Exit(1)
	}
}

func run(configPath, levelPath string, ticks int, speed float32, debug bool) error {
	if levelPath == "" {
		return fmt.Errorf("-level is required")
	}

	cfg, err := lightnet.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
	}

	lvl, err := lightnet.LoadLevel(levelPath, cfg)
	if err != nil {
		return err
	}

	_, handles := lvl.Handles()
	subject := &lightnet.PathSubject{Points: lvl.Path, Speed: speed}

	logger := lightnet.NewDefaultLogger(cfg.LogPrefix, cfg.Debug)
	network := lightnet.LightNetworkModule{
		Config:   cfg,
		Geometry: lvl.Geometry,
		Lights:   handles,
		Query:    lightnet.NewOccluderSet(lvl.Occluders),
		Subject:  subject,
		Self:     lvl.Self,
	}

	nc, err := network.BuildNetwork(logger)
	if err != nil {
		return err
	}
	network.Controller = nc

	app := lightnet.NewApp()
	app.Commands().AddResources(logger)
	app.UseModules(
		lightnet.TimeModule{},
		network,
		lightnet.PathSubjectModule{Subject: subject},
	)
	ran := app.RunTicks(ticks)

	stats, _ := lightnet.Resource[lightnet.NetworkStats](app)

	active := -1
	if n := nc.ActiveNode(); n != nil {
		active = n.ID
	}
	logger.Infof("%s: %d ticks, %d retargets (last at tick %d), %d capacity warnings, final node %d, %d/%d lights lit",
		lvl.Name, ran, stats.Retargets, stats.LastRetargetTick, stats.Warnings, active, nc.Pool().Lit(), nc.Pool().Capacity())
	return nil
}
