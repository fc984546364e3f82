package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/scom-repos/scom-scatter-chart-sub000/datasource"
	"github.com/scom-repos/scom-scatter-chart-sub000/render"
	"github.com/scom-repos/scom-scatter-chart-sub000/widget"
	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/log"
)

var (
	renderData  string
	renderCSV   string
	renderXLSX  string
	renderSheet string
	renderOut   string
	renderJSON  bool
	renderWatch bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render widget data to an HTML chart",
	Long:  "Render widget data to an HTML chart, or to the chart JSON with --json",
	RunE: func(cmd *cobra.Command, args []string) error {
		if renderData == "" {
			return fmt.Errorf("--data is required")
		}
		if err := renderOnce(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rendered %s\n", renderOut)
		if !renderWatch {
			return nil
		}
		return watchRender(cmd)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderData, "data", "d", "", "Widget data file (.json, .jsonc, .yaml)")
	renderCmd.Flags().StringVar(&renderCSV, "csv", "", "Read rows from a CSV file")
	renderCmd.Flags().StringVar(&renderXLSX, "xlsx", "", "Read rows from an Excel workbook")
	renderCmd.Flags().StringVar(&renderSheet, "sheet", "", "Excel sheet, the first when empty")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "chart.html", "Output file")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "Write the chart JSON instead of HTML")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "Render again when the inputs change")
}

func renderOnce(ctx context.Context) error {
	data, err := loadData(renderData)
	if err != nil {
		return err
	}
	switch {
	case renderCSV != "":
		data.DataSource = datasource.KindCSV
		data.File = renderCSV
	case renderXLSX != "":
		data.DataSource = datasource.KindExcel
		data.File = renderXLSX
		data.Sheet = renderSheet
	}

	w, err := widget.New(data)
	if err != nil {
		return err
	}
	if err := w.Refresh(ctx); err != nil {
		return err
	}
	out, err := w.GetChartData()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if renderJSON {
		content, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		buf.Write(content)
	} else if err := render.HTML(&buf, out.ChartData, data.Title, data.Description); err != nil {
		return err
	}
	return os.WriteFile(renderOut, buf.Bytes(), 0644)
}

func watchRender(cmd *cobra.Command) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	files := map[string]bool{}
	for _, f := range []string{renderData, renderCSV, renderXLSX} {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		files[abs] = true
		// editors replace files, so the directory is watched
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(event.Name)
			if files[abs] && event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				debounce = time.After(200 * time.Millisecond)
			}
		case <-debounce:
			debounce = nil
			if err := renderOnce(cmd.Context()); err != nil {
				log.Error("[render] %v", err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %s\n", renderOut)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("[render] watch: %v", err)
		}
	}
}
