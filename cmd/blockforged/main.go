package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/blockforge/core/block"
	"github.com/blockforge/core/config"
	"github.com/blockforge/core/console"
	"github.com/blockforge/core/internal/cube"
	"github.com/blockforge/core/registry"
	"github.com/blockforge/core/session"
	"github.com/blockforge/core/world"
	"github.com/blockforge/core/world/generator/superflat"
)

func main() {
	log := slog.Default()

	conf, err := config.Load("config.toml")
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	store, err := registry.NewStore()
	if err != nil {
		log.Error("failed to load registries", "err", err)
		os.Exit(1)
	}

	catalog, err := block.NewCatalog()
	if err != nil {
		log.Error("failed to load block catalog", "err", err)
		os.Exit(1)
	}

	w := world.New(world.Config{Log: log, Catalog: catalog})
	dim, err := buildOverworld(conf, catalog)
	if err != nil {
		log.Error("failed to build overworld dimension", "err", err)
		os.Exit(1)
	}
	w.AddDimension(dim)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tickClosed := make(chan struct{})
	go world.RunTickLoop(w, tickClosed)
	defer close(tickClosed)

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(int(conf.Port)))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("failed to bind listener", "addr", addr, "err", err)
		os.Exit(1)
	}
	defer ln.Close()

	go console.New(log).Run(ctx)

	log.Info("blockforged listening",
		"addr", addr,
		"dimensions", len(w.Dimensions()),
		"registries", len(store.Order()),
	)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	deps := session.Deps{World: w, Store: store, Catalog: catalog, Config: conf, Log: log}
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				log.Error("accept failed", "err", err)
				return
			}
		}
		go serveConn(conn, deps, log)
	}
}

func serveConn(conn net.Conn, deps session.Deps, log *slog.Logger) {
	defer conn.Close()
	c := session.NewConn(conn, deps)
	if err := c.Serve(); err != nil {
		log.Debug("connection closed", "remote", conn.RemoteAddr(), "err", err)
	}
}

// buildOverworld constructs the single "overworld" Dimension from the
// configured worldgen implementation (spec.md §4.10 step 4). The only
// implementation this core ships is the super-flat generator; any other
// configured value is an error rather than a silent fallback.
func buildOverworld(conf config.Config, catalog *block.Catalog) (*world.Dimension, error) {
	if conf.WorldgenImplementation != "super_flat" {
		return nil, fmt.Errorf("blockforged: unknown worldgen-implementation %q", conf.WorldgenImplementation)
	}

	bedrock, ok := catalog.ByName("minecraft:bedrock")
	if !ok {
		return nil, fmt.Errorf("blockforged: minecraft:bedrock not found in catalog")
	}
	dirt, ok := catalog.ByName("minecraft:dirt")
	if !ok {
		return nil, fmt.Errorf("blockforged: minecraft:dirt not found in catalog")
	}
	grass, ok := catalog.ByName("minecraft:grass_block")
	if !ok {
		return nil, fmt.Errorf("blockforged: minecraft:grass_block not found in catalog")
	}

	const minY, height = -64, 384
	// start_y=0 is relative to the dimension's min-y, landing bedrock at
	// the overworld floor per spec.md §8 S1.
	gen := superflat.New([]uint32{
		uint32(bedrock.DefaultState()),
		uint32(dirt.DefaultState()),
		uint32(grass.DefaultState()),
	}, 0)

	return world.NewDimension(0, world.DimensionType{
		Identifier:   "minecraft:overworld",
		Range:        cube.Range{Min: minY, Height: height},
		AmbientLight: 0,
		HasCeiling:   false,
	}, gen), nil
}
