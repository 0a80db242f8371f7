package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pumpline/pkg/conf"
	"pumpline/pkg/logger"
	"pumpline/report"
	"pumpline/service"
)

type Handler struct {
	Options Options

	mu  sync.RWMutex
	v   *viper.Viper
	svc *service.Service
	out io.Writer
}

func NewHandler(out io.Writer) *Handler {
	return &Handler{out: out}
}

// Load 从 viper 配置构建设计服务，配置热更新时也会调用
func (h *Handler) Load(v *viper.Viper) error {
	cfg, err := service.DecodeDesignConfig(v)
	if err != nil {
		logger.Logger.Errorf("解析设计配置失败: %v", err)
		return err
	}
	svc, err := service.NewService(cfg)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.v, h.svc = v, svc
	h.mu.Unlock()
	return nil
}

func (h *Handler) service() *service.Service {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.svc
}

func (h *Handler) outputDir() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.v == nil {
		return "out"
	}
	return h.v.GetString("output.dir")
}

// respond 普通模式输出 text，--json 模式输出 apiResponse
func (h *Handler) respond(data any, text string) error {
	if h.Options.JSON {
		enc := json.NewEncoder(h.out)
		enc.SetIndent("", "  ")
		return enc.Encode(success(data))
	}
	_, err := fmt.Fprintln(h.out, text)
	return err
}

func (h *Handler) fail(err error) error {
	if h.Options.JSON {
		code := errCodeOf(err)
		enc := json.NewEncoder(h.out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(fail(code, fmt.Sprintf("%s: %v", code, err)))
	}
	return err
}

func (h *Handler) exporter() (*report.Exporter, error) {
	formats, err := parseFormats(h.Options.Formats)
	if err != nil {
		return nil, err
	}
	return report.NewExporter(h.outputDir(), formats...), nil
}

func (h *Handler) Design(cmd *cobra.Command, args []string) error {
	if err := h.runDesign(); err != nil {
		return h.fail(err)
	}
	if !h.Options.Watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf.OnChange(func(e fsnotify.Event) {
		logger.Logger.Infof("配置文件 %s 已修改，重新计算", e.Name)
		if err := h.Load(conf.Conf); err != nil {
			return
		}
		if err := h.runDesign(); err != nil {
			logger.Logger.Errorf("重新计算失败: %v", err)
		}
	})
	logger.Logger.Infof("正在监听 %s，Ctrl+C 退出", conf.FileInUse())

	<-ctx.Done()
	return nil
}

func (h *Handler) runDesign() error {
	res, err := h.service().Design()
	if err != nil {
		return err
	}

	var files []string
	if h.Options.Export {
		exp, err := h.exporter()
		if err != nil {
			return err
		}
		if files, err = exp.Export(res); err != nil {
			return err
		}
	}

	text := report.Console(res)
	for _, f := range files {
		text += "\n" + f
	}
	return h.respond(designData{Result: res, Files: files}, text)
}

// Curve pumpline curve <head|efficiency|power|npsh> <q>...
func (h *Handler) Curve(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return h.fail(fmt.Errorf("%w: 需要曲线名和至少一个流量", errBadArgs))
	}
	q, err := parseQuantity(args[0])
	if err != nil {
		return h.fail(err)
	}
	flows, err := parseFloats(args[1:])
	if err != nil {
		return h.fail(err)
	}

	values, err := h.service().EstimateCurve(q, flows)
	if err != nil {
		return h.fail(err)
	}
	return h.respond(values, report.CurveTable(q, values))
}

// Search pumpline search [总流量 L/s] [目标扬程 m]，缺省时取配置流量和管线 TDH；显式扬程必须为正
func (h *Handler) Search(cmd *cobra.Command, args []string) error {
	vals, err := parseFloats(args)
	if err != nil {
		return h.fail(err)
	}
	svc := h.service()
	flow := svc.Config().Flow
	if len(vals) > 0 {
		flow = vals[0]
	}

	var candidates []service.ArrangementCandidate
	if len(vals) > 1 {
		candidates, err = svc.Search(flow, vals[1])
	} else {
		candidates, err = svc.SearchForLine(flow)
	}
	if err != nil {
		return h.fail(err)
	}
	return h.respond(candidates, report.CandidatesTable(candidates))
}

func (h *Handler) Thickness(cmd *cobra.Command, args []string) error {
	rows, err := h.service().Thickness()
	if err != nil {
		return h.fail(err)
	}
	return h.respond(rows, report.ThicknessTable(rows))
}

// Sweep pumpline sweep 0.6 0.7 0.8 或 --from/--to/--step
func (h *Handler) Sweep(cmd *cobra.Command, args []string) error {
	diameters, err := parseFloats(args)
	if err != nil {
		return h.fail(err)
	}
	if len(diameters) == 0 {
		from, _ := cmd.Flags().GetFloat64("from")
		to, _ := cmd.Flags().GetFloat64("to")
		step, _ := cmd.Flags().GetFloat64("step")
		if diameters, err = diameterRange(from, to, step); err != nil {
			return h.fail(err)
		}
	}

	rows, err := h.service().Sweep(cmd.Context(), diameters)
	if err != nil {
		return h.fail(err)
	}

	text := report.SweepTable(rows)
	if h.Options.Export {
		exp, err := h.exporter()
		if err != nil {
			return h.fail(err)
		}
		files, err := exp.ExportSweep(rows)
		if err != nil {
			return h.fail(err)
		}
		for _, f := range files {
			text += "\n" + f
		}
	}
	return h.respond(rows, text)
}

// Import pumpline import <dir>，检查目录中的厂家曲线文件
func (h *Handler) Import(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return h.fail(fmt.Errorf("%w: 需要曲线文件目录", errBadArgs))
	}
	curves, err := service.ImportCurveDir(args[0])
	if err != nil {
		return h.fail(err)
	}

	data := importData{Dir: args[0], Points: make(map[string]int, len(curves))}
	for q, pts := range curves {
		data.Points[string(q)] = len(pts)
	}
	names := make([]string, 0, len(data.Points))
	for name := range data.Points {
		names = append(names, name)
	}
	sort.Strings(names)

	text := fmt.Sprintf("%s: 共 %d 条曲线", args[0], len(names))
	for _, name := range names {
		text += fmt.Sprintf("\n  %-10s %d 点", name, data.Points[name])
	}
	return h.respond(data, text)
}
