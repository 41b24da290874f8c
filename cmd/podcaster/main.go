package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"podcaster/internal/app/podcaster"
	"podcaster/internal/app/podcaster/session"
	"podcaster/internal/configs"
)

var opts struct {
	Conf     string `short:"c" long:"conf" env:"PODCASTER_CONF" default:"podcaster.yml" description:"config file (yml)"`
	Mode     string `short:"m" long:"mode" env:"PODCASTER_MODE" choice:"http" choice:"demo" choice:"local" description:"generator mode, overrides config"`
	Endpoint string `short:"e" long:"endpoint" env:"PODCASTER_ENDPOINT" description:"generation service endpoint, overrides config"`
	User     string `short:"u" long:"user" env:"PODCASTER_USER" description:"signed in user, overrides config"`
	Demo     int    `long:"demo" default:"0" description:"add demo podcasts before uploads"`
	Dbg      bool   `long:"dbg" env:"DEBUG" description:"show debug info"`

	Args struct {
		Files []string `positional-arg-name:"FILE" description:"documents to upload (.pdf, .txt)"`
	} `positional-args:"yes"`
}

func checkFileExists(filepath string) bool {
	if _, err := os.Stat(filepath); errors.Is(err, os.ErrNotExist) {
		return false
	}

	return true
}

func loadConfig(fileName string) (*configs.Conf, error) {
	if !checkFileExists(fileName) {
		fileName = "configs/podcaster.yml"
		if !checkFileExists(fileName) {
			log.Printf("[WARN] config file not found, use defaults")
			conf := &configs.Conf{}
			conf.SetDefaults()
			return conf, nil
		}
	}
	return configs.Load(fileName)
}

func main() {
	p := flags.NewParser(&opts, flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		if err.(*flags.Error).Type != flags.ErrHelp {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}
		p.WriteHelp(os.Stderr)
		os.Exit(2)
	}
	setupLog(opts.Dbg)

	conf, err := loadConfig(opts.Conf)
	if err != nil {
		log.Fatalf("[ERROR] can't load config %s, %v", opts.Conf, err)
	}
	if opts.Mode != "" {
		conf.Client.Mode = opts.Mode
	}
	if opts.Endpoint != "" {
		conf.Client.Endpoint = opts.Endpoint
	}
	if opts.User != "" {
		conf.Client.User = opts.User
	}

	var identity *session.Identity
	if conf.Client.User != "" {
		identity = &session.Identity{UID: conf.Client.User, Email: conf.Client.User}
	}
	session.Init(session.NewStaticProvider(identity))
	defer session.Teardown()

	app, err := podcaster.NewApplication(conf, os.Stdout)
	if err != nil {
		log.Fatalf("[ERROR] can't create app, %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, opts.Args.Files, opts.Demo); err != nil {
		log.Printf("[ERROR] %v", err)
		session.Teardown()
		os.Exit(1)
	}
}

func setupLog(dbg bool) {
	if dbg {
		log.Setup(log.Debug, log.CallerFile, log.CallerFunc, log.Msec, log.LevelBraces)
		return
	}
	log.Setup(log.Msec, log.LevelBraces)
}
