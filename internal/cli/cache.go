package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gregorypanta/mental-models-app/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached API responses and catalog snapshots",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.settings().CacheOptions()
			if opts.Disabled {
				printWarning("Caching is disabled in the configuration")
				return nil
			}

			cc, err := cache.Open(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				return fmt.Errorf("cache backend %T cannot be cleared", cc)
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if count == 0 {
				printInfo("Cache is empty")
			} else {
				printSuccess("Cleared %d cached entries", count)
			}
			printDetail("%s", cacheLocation(opts))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached entries are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(cacheLocation(c.settings().CacheOptions()))
			return nil
		},
	}
}

// cacheLocation describes the backend Open would pick for opts.
func cacheLocation(opts cache.Options) string {
	switch {
	case opts.Disabled:
		return "disabled"
	case opts.Redis.Addr != "":
		return "redis://" + opts.Redis.Addr + " (prefix " + redisPrefix(opts.Redis) + ")"
	default:
		return opts.Dir
	}
}

func redisPrefix(o cache.RedisOptions) string {
	if o.Prefix == "" {
		return cache.DefaultRedisPrefix
	}
	return o.Prefix
}
