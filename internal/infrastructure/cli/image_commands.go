package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/aicli/internal/application/imaging"
	"github.com/doeshing/aicli/internal/domain"
)

type imageFlags struct {
	output   string
	dir      string
	count    int
	timeout  int
	metadata bool
}

func (f *imageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file path (suffixed _1, _2, ... when --count > 1)")
	cmd.Flags().StringVar(&f.dir, "dir", "", "Directory under the project root for generated files")
	cmd.Flags().IntVar(&f.count, "count", domain.DefaultImageCount, "Number of images to generate (1-4)")
	cmd.Flags().IntVar(&f.timeout, "timeout", int(domain.DefaultImageTimeout/time.Second), "Request timeout in seconds")
	cmd.Flags().BoolVar(&f.metadata, "metadata", false, "Save a JSON metadata file next to the images")
}

// options applies config defaults for flags the user did not set.
func (f *imageFlags) options(cmd *cobra.Command, s *session) imaging.Options {
	opts := imaging.Options{
		Model:    s.flags.model,
		Output:   f.output,
		Dir:      f.dir,
		Count:    f.count,
		Metadata: f.metadata,
	}
	if cmd.Flags().Changed("timeout") {
		opts.Timeout = time.Duration(f.timeout) * time.Second
	}
	if !cmd.Flags().Changed("dir") {
		opts.Dir = s.container.Config.Images.Directory
	}
	return opts
}

func newImageCommand(s *session) *cobra.Command {
	flags := &imageFlags{}

	cmd := &cobra.Command{
		Use:   "image <prompt>",
		Short: "Generate image from text description",
		Example: `  aicli image "a cat wearing a space helmet"
  aicli image "a watercolor lighthouse" --count=3 --dir=storage/images --metadata`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := s.container.ImagingService.Generate(cmd.Context(), imaging.GenerateRequest{
				Prompt:  args[0],
				Options: flags.options(cmd, s),
			})
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

func newImageModCommand(s *session) *cobra.Command {
	flags := &imageFlags{}

	cmd := &cobra.Command{
		Use:     "image-mod <image> <modification>",
		Aliases: []string{"imagemod"},
		Short:   "Modify an existing image",
		Example: `  aicli image-mod photo.jpg "make the sky purple"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := s.container.ImagingService.Modify(cmd.Context(), imaging.ModifyRequest{
				ImagePath:    args[0],
				Modification: args[1],
				Options:      flags.options(cmd, s),
			})
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
