package cli

import "fmt"

func Run(args []string) error {
	if len(args) == 0 {
		printRootUsage()
		return nil
	}

	switch args[0] {
	case "normalize":
		return runNormalize(args[1:])
	case "buckets":
		return runBuckets(args[1:])
	case "fps":
		return runFPS(args[1:])
	case "inspect":
		return runInspect(args[1:])
	case "trigger":
		return runTrigger(args[1:])
	case "csv2txt":
		return runCSV2Txt(args[1:])
	case "download":
		return runDownload(args[1:])
	case "settings":
		return runSettings(args[1:])
	case "manage":
		return runManage(args[1:])
	case "doctor":
		return runDoctor(args[1:])
	case "help", "-h", "--help":
		printRootUsage()
		return nil
	default:
		printRootUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printRootUsage() {
	fmt.Println("vidprep: batch utilities for preparing video/caption datasets")
	fmt.Println()
	fmt.Println("Dataset Commands:")
	fmt.Println("  normalize  crop+scale videos in a folder to a target aspect ratio")
	fmt.Println("  buckets    partition videos into frame-count bucket folders")
	fmt.Println("  fps        convert videos to a target frame rate")
	fmt.Println("  inspect    print resolution/FPS/frame-count table for a folder")
	fmt.Println("  trigger    write a trigger-word .txt sidecar per .mp4")
	fmt.Println("  csv2txt    write per-row .txt files from two CSV columns")
	fmt.Println()
	fmt.Println("Download Commands:")
	fmt.Println("  download   fetch YouTube videos/audio with captions, resumable via log")
	fmt.Println()
	fmt.Println("Utility Commands:")
	fmt.Println("  settings   show/update persisted global defaults")
	fmt.Println("  manage     interactive settings editor")
	fmt.Println("  doctor     check external dependencies (ffmpeg/ffprobe)")
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - Use --json on commands for machine-readable output")
	fmt.Println("  - Re-running download over the same folder skips completed items")
}
