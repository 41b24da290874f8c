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
	"podcaster/internal/app/podcaster/proc"
	"podcaster/internal/app/podcaster/service"
	"podcaster/internal/configs"
)

var opts struct {
	Conf    string `short:"c" long:"conf" env:"PODCASTER_CONF" default:"podcaster.yml" description:"config file (yml)"`
	Listen  string `short:"l" long:"listen" env:"PODCASTER_LISTEN" description:"listen address, overrides config"`
	DB      string `short:"d" long:"db" env:"PODCASTER_DB" description:"bolt db file for summary cache, overrides config"`
	NoCache bool   `long:"no-cache" description:"disable summary cache"`
	Dbg     bool   `long:"dbg" env:"DEBUG" description:"show debug info"`
}

func loadConfig(fileName string) (*configs.Conf, error) {
	if _, err := os.Stat(fileName); errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] config file %s not found, use defaults", fileName)
		conf := &configs.Conf{}
		conf.SetDefaults()
		return conf, nil
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
	if opts.Dbg {
		log.Setup(log.Debug, log.CallerFile, log.Msec, log.LevelBraces)
	} else {
		log.Setup(log.Msec, log.LevelBraces)
	}

	conf, err := loadConfig(opts.Conf)
	if err != nil {
		log.Fatalf("[ERROR] can't load config %s, %v", opts.Conf, err)
	}
	if opts.Listen != "" {
		conf.Service.Listen = opts.Listen
	}
	if opts.DB != "" {
		conf.Cache.DB = opts.DB
	}
	if conf.Cache.DB == "" {
		conf.Cache.DB = "var/summaries.bdb"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, conf, opts.NoCache); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
}

// run builds processor from config and serves until ctx is done or server fails
func run(ctx context.Context, conf *configs.Conf, noCache bool) error {
	processor := &proc.Processor{Extractor: &proc.Extractor{}, MaxChars: conf.Service.SummaryMaxChars}

	if !noCache {
		db, err := podcaster.NewBoltDB(conf.Cache.DB)
		if err != nil {
			return fmt.Errorf("can't create boltdb instance: %w", err)
		}
		defer db.Close() // nolint
		processor.Cache = &proc.BoltDB{DB: db}
	}

	if conf.CloudStorage.Archive || conf.Speech.Enabled {
		s3client, err := podcaster.NewS3Client(
			conf.CloudStorage.EndPointURL,
			conf.CloudStorage.Region,
			conf.CloudStorage.Secrets.Key,
			conf.CloudStorage.Secrets.Secret,
			true)
		if err != nil {
			return fmt.Errorf("can't create s3client instance: %w", err)
		}
		store := &proc.S3Store{Client: s3client, Location: conf.CloudStorage.Region, Bucket: conf.CloudStorage.Bucket}
		if conf.CloudStorage.Archive {
			processor.Archive = store
		}
		if conf.Speech.Enabled {
			processor.Audio = store
		}
	}

	if conf.Speech.Enabled {
		pollyClient, err := podcaster.NewPollyClient(ctx, conf.Speech.Region,
			conf.CloudStorage.Secrets.Key, conf.CloudStorage.Secrets.Secret)
		if err != nil {
			return fmt.Errorf("can't create polly client: %w", err)
		}
		speech := &proc.PollySynthesizer{Client: pollyClient, VoiceID: conf.Speech.Voice, EngineKey: conf.Speech.Engine}
		if conf.Speech.Language != "" {
			if voices, err := speech.Voices(ctx, conf.Speech.Language); err != nil {
				log.Printf("[WARN] can't list %s voices, %v", conf.Speech.Language, err)
			} else {
				log.Printf("[INFO] %d voices for %s, using %s", len(voices), conf.Speech.Language, speech.Voice())
			}
		}
		processor.Speech = speech
	}

	srv := service.NewServer(service.Opts{
		Listen:        conf.Service.Listen,
		MaxUploadSize: conf.Service.MaxUploadSize,
		RateLimit:     conf.Service.RateLimit,
		AllowedOrigin: conf.Service.AllowedOrigin,
	}, processor)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
