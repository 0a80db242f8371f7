package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"pumpline/handler"
	"pumpline/pkg/conf"
	"pumpline/pkg/logger"
)

func main() {
	h := handler.NewHandler(os.Stdout)
	root := SetupCommands(h)
	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Logger.Errorf("执行失败: %v", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func SetupCommands(h *handler.Handler) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:          "pumpline",
		Short:        "长距离加压输水管线设计：水力剖面、泵组方案、泵站、壁厚和水池",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.InitConf(cfgPath); err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				out, _ := cmd.Flags().GetString("out")
				conf.Conf.Set("output.dir", out)
			}
			logger.InitLogger("pumpline")
			if f := conf.FileInUse(); f != "" {
				logger.Logger.Infof("使用配置文件 %s", f)
			}
			return h.Load(conf.Conf)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "./pumpline.yaml", "配置文件")
	pf.BoolVar(&h.Options.JSON, "json", false, "以 JSON 输出结果")
	pf.BoolVarP(&h.Options.Export, "export", "e", false, "导出报告文件")
	pf.StringSliceVarP(&h.Options.Formats, "format", "f", nil, "导出格式 xlsx,csv,png,pdf,yaml,json，缺省全部")
	pf.StringP("out", "o", "", "导出目录，缺省取配置 output.dir")

	design := &cobra.Command{
		Use:   "design",
		Short: "完整设计计算",
		Args:  cobra.NoArgs,
		RunE:  h.Design,
	}
	design.Flags().BoolVarP(&h.Options.Watch, "watch", "w", false, "监听配置文件，修改后重新计算")

	curve := &cobra.Command{
		Use:   "curve <head|efficiency|power|npsh> <q>...",
		Short: "厂家曲线插值（范围外线性外推）",
		Args:  cobra.MinimumNArgs(2),
		RunE:  h.Curve,
	}

	search := &cobra.Command{
		Use:   "search [flow] [head]",
		Short: "泵组并联/串联方案搜索，按总装机功率排序",
		Args:  cobra.MaximumNArgs(2),
		RunE:  h.Search,
	}

	thickness := &cobra.Command{
		Use:   "thickness",
		Short: "ASME B31.4 管道壁厚校核",
		Args:  cobra.NoArgs,
		RunE:  h.Thickness,
	}

	sweep := &cobra.Command{
		Use:   "sweep [diameter]...",
		Short: "多个管径并发比选",
		RunE:  h.Sweep,
	}
	sweep.Flags().Float64("from", 0.6, "起始管径 m")
	sweep.Flags().Float64("to", 1.0, "终止管径 m")
	sweep.Flags().Float64("step", 0.1, "管径步长 m")

	imp := &cobra.Command{
		Use:   "import <dir>",
		Short: "检查目录中的厂家曲线文件（[泵型_]head|efficiency|power|npsh.xlsx|csv）",
		Args:  cobra.ExactArgs(1),
		RunE:  h.Import,
	}

	root.AddCommand(design, curve, search, thickness, sweep, imp)
	return root
}
