package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/grayscale-mcp/internal/grayscale"
)

var pretty bool

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert an RGB image given as JSON to grayscale",
	Long: `Reads an RGB image as a JSON array [height][width][3] from file, or from
stdin when file is omitted or "-", and writes the grayscale image as a JSON
array [height][width] to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "indent the JSON output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var img grayscale.RGBImage
	if err := json.NewDecoder(in).Decode(&img); err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	gray, err := grayscale.Convert(img)
	if err != nil {
		return fmt.Errorf("conversion failed (%s): %w", grayscale.Code(err), err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(gray)
}
