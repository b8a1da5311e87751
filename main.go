package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/prizewheel/pkg/app"
	"github.com/decker502/prizewheel/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "外部转盘配置 YAML（默认使用嵌入的 data/wheel.yaml）")
	providerURL := flag.String("provider-url", "", "奖品服务地址，如 http://localhost:8080/api/spin（默认本地随机）")
	tier := flag.String("tier", "", "强制画质分级：low / medium / high")
	seed := flag.Uint64("seed", 0, "随机种子（0 使用当前时间）")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		ConfigPath:  *configPath,
		ProviderURL: *providerURL,
		Tier:        *tier,
		Seed:        *seed,
	})
	if err != nil {
		// 非 verbose 模式下 log 已被静默，错误直接写 stderr
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer gameApp.Shutdown()

	w, h := gameApp.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Prize Wheel")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(gameApp.Fullscreen())

	if err := ebiten.RunGame(gameApp); err != nil {
		gameApp.Shutdown()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
