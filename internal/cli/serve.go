package cli

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fanchart/pkg/buildinfo"
	"github.com/matzehuels/fanchart/pkg/cache"
	"github.com/matzehuels/fanchart/pkg/pipeline"
	"github.com/matzehuels/fanchart/pkg/server"
)

// Environment variables read by serve. A .env file in the working
// directory is loaded first; variables already set take precedence.
const (
	envAddr          = "FANCHART_ADDR"
	envRedisAddr     = "FANCHART_REDIS_ADDR"
	envRedisPassword = "FANCHART_REDIS_PASSWORD"
	envRedisDB       = "FANCHART_REDIS_DB"
)

type serveOpts struct {
	addr      string
	redisAddr string
	envFile   string
	noCache   bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnv(opts.envFile); err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				if v := os.Getenv(envAddr); v != "" {
					opts.addr = v
				}
			}
			if !cmd.Flags().Changed("redis") {
				opts.redisAddr = os.Getenv(envRedisAddr)
			}

			runner, err := c.serveRunner(cmd, opts)
			if err != nil {
				return err
			}
			defer runner.Close()

			return server.New(runner, c.Logger).ListenAndServe(cmd.Context(), opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address (env "+envAddr+")")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for a shared cache (env "+envRedisAddr+")")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load if present")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	return cmd
}

// serveRunner picks the cache: Redis when configured, else the local file
// cache.
func (c *CLI) serveRunner(cmd *cobra.Command, opts serveOpts) (*pipeline.Runner, error) {
	if opts.noCache || opts.redisAddr == "" {
		return c.newRunner(opts.noCache)
	}

	db := 0
	if v := os.Getenv(envRedisDB); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		db = n
	}
	rc, err := cache.NewRedisCache(cmd.Context(), cache.RedisOptions{
		Addr:     opts.redisAddr,
		Password: os.Getenv(envRedisPassword),
		DB:       db,
		Prefix:   appName + ":",
	})
	if err != nil {
		return nil, err
	}
	// Instances of different versions may share one Redis; renders from
	// another version must not be served.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Get().Version+":")
	c.Logger.Info("using redis cache", "addr", opts.redisAddr, "db", db)
	return pipeline.NewRunner(rc, keyer, c.Logger), nil
}

// loadEnv loads a dotenv file. A missing file is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
