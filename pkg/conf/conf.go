package conf

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "PUMPLINE"

var Conf = viper.New()

var (
	watchOnce sync.Once
	hooksMu   sync.Mutex
	hooks     []func(fsnotify.Event)
)

// InitConf 读取 yaml 配置；同目录下的 .env 会先被加载进环境变量。
// 配置文件不存在时只使用默认值和环境变量。
func InitConf(path string) error {
	Conf = New()

	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	Conf.SetConfigFile(path)
	if err := Conf.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// New 返回带默认值和环境变量映射的 viper 实例
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.maxSize", 20)
	v.SetDefault("log.maxBackups", 5)
	v.SetDefault("log.maxAge", 30)
	v.SetDefault("log.console", true)
	v.SetDefault("output.dir", "out")

	return v
}

// FileInUse 当前实际读取的配置文件，未读取时为空
func FileInUse() string {
	if _, err := os.Stat(Conf.ConfigFileUsed()); err != nil {
		return ""
	}
	return Conf.ConfigFileUsed()
}

// OnChange 注册配置文件变更回调，首次调用时开始监听
func OnChange(fn func(fsnotify.Event)) {
	hooksMu.Lock()
	hooks = append(hooks, fn)
	hooksMu.Unlock()

	watchOnce.Do(func() {
		Conf.OnConfigChange(func(e fsnotify.Event) {
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				return
			}
			hooksMu.Lock()
			fns := append([]func(fsnotify.Event){}, hooks...)
			hooksMu.Unlock()
			for _, f := range fns {
				f(e)
			}
		})
		Conf.WatchConfig()
	})
}
