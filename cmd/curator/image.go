package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mantonx/curator/internal/transforms"
	"github.com/spf13/cobra"
)

func newImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Rank images by orientation",
	}

	var orientation string
	var all bool
	pick := &cobra.Command{
		Use:   "pick WxH=url...",
		Short: "Print the best image URL for an orientation",
		Long: `Print the URL of the best image for an orientation.

Images are given as WIDTHxHEIGHT=URL, e.g. 1920x1080=https://img/1.jpg.
With --all every image is printed, best first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := transforms.ParseOrientation(orientation)
			if err != nil {
				return err
			}

			images := make([]transforms.Image, 0, len(args))
			for i, arg := range args {
				img, err := parseImageArg(arg)
				if err != nil {
					return err
				}
				img.ID = strconv.Itoa(i)
				images = append(images, img)
			}

			out := cmd.OutOrStdout()
			if !all {
				fmt.Fprintln(out, transforms.PickImage(images, o))
				return nil
			}
			for _, img := range transforms.RankImages(images, o) {
				fmt.Fprintf(out, "%dx%d\t%s\n", img.Width, img.Height, img.URL)
			}
			return nil
		},
	}
	pick.Flags().StringVarP(&orientation, "orientation", "o", string(transforms.Landscape), "portrait or landscape")
	pick.Flags().BoolVar(&all, "all", false, "print every image in rank order")

	cmd.AddCommand(pick)
	return cmd
}

// parseImageArg reads WIDTHxHEIGHT=URL.
func parseImageArg(arg string) (transforms.Image, error) {
	dims, url, ok := strings.Cut(arg, "=")
	if !ok || url == "" {
		return transforms.Image{}, fmt.Errorf("image %q: expected WIDTHxHEIGHT=URL", arg)
	}
	w, h, ok := strings.Cut(strings.ToLower(dims), "x")
	if !ok {
		return transforms.Image{}, fmt.Errorf("image %q: expected WIDTHxHEIGHT=URL", arg)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return transforms.Image{}, fmt.Errorf("image %q: bad width: %w", arg, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return transforms.Image{}, fmt.Errorf("image %q: bad height: %w", arg, err)
	}
	return transforms.Image{URL: url, Width: width, Height: height}, nil
}
