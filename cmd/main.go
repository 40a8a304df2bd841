package main

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"runwalk/internal/audio"
	"runwalk/internal/core/session"
	"runwalk/internal/platform"
	"runwalk/internal/storage"
	"runwalk/internal/ui/settings"
	"runwalk/internal/ui/tray"
	"runwalk/internal/ui/workout"
	"runwalk/resources"
)

const appName = "RunWalk"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	userSettings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	player, err := audio.NewPlayer()
	if err != nil {
		// Audio is cosmetic; the timer runs fine without it.
		log.Printf("audio unavailable: %v", err)
	}
	player.SetBeatSound(userSettings.BeatSound)

	controller := session.New(userSettings.WorkoutConfig(), session.Config{TickInterval: time.Second}, player)
	if userSettings.Muted {
		controller.ToggleMute()
	}

	fyneApp := app.NewWithID("com.runwalk.app")
	logo := resources.MustLogo("runwalk.png")
	fyneApp.SetIcon(logo)

	saveSettings := func() {
		if err := storage.SaveSettings(appName, userSettings); err != nil {
			log.Printf("save settings: %v", err)
		}
	}

	startPause := func() {
		if controller.Snapshot().Status == session.StatusRunning {
			controller.Pause()
		} else {
			controller.Start()
		}
	}
	toggleMute := func() {
		userSettings.Muted = controller.ToggleMute()
		saveSettings()
	}

	var settingsWindow *settings.Window
	mainWindow := workout.New(fyneApp, workout.Callbacks{
		OnStartPause: startPause,
		OnReset:      controller.Reset,
		OnToggleMute: toggleMute,
		OnSettings: func() {
			settingsWindow.Show()
		},
	})

	settingsWindow = settings.New(fyneApp, userSettings, func(updated settings.Settings) {
		if err := controller.CommitConfig(updated.WorkoutConfig()); err != nil {
			log.Printf("settings not applied: %v", err)
			return
		}
		updated.Muted = userSettings.Muted
		userSettings = updated
		player.SetBeatSound(updated.BeatSound)
		saveSettings()
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:       mainWindow.Show,
			OnStartPause: startPause,
			OnReset:      controller.Reset,
			OnToggleMute: toggleMute,
			OnSettings: func() {
				settingsWindow.Show()
			},
			OnQuit: func() {
				controller.Close()
				fyneApp.Quit()
			},
		})
		desktopApp.SetSystemTrayIcon(logo)
		mainWindow.Raw().SetCloseIntercept(func() {
			mainWindow.Raw().Hide()
		})
	}

	events := controller.Subscribe(16)
	go func() {
		for range events {
			snapshot := controller.Snapshot()
			fyne.Do(func() {
				mainWindow.Apply(snapshot)
				if trayManager != nil {
					trayManager.SetStatus(statusLine(snapshot))
					trayManager.SetStartLabel(transportLabel(snapshot.Status))
					trayManager.SetMuted(snapshot.Muted)
				}
			})
		}
	}()

	mainWindow.Apply(controller.Snapshot())
	mainWindow.Show()
	fyneApp.Run()
	controller.Close()
}

func statusLine(snapshot session.Snapshot) string {
	switch snapshot.Status {
	case session.StatusRunning:
		return fmt.Sprintf("%s · cycle %d/%d", snapshot.Phase, snapshot.Cycle, snapshot.Config.Cycles)
	case session.StatusPaused:
		return "paused"
	case session.StatusCompleted:
		return "workout complete"
	default:
		return "ready"
	}
}

func transportLabel(status session.Status) string {
	switch status {
	case session.StatusRunning:
		return "Pause"
	case session.StatusPaused:
		return "Resume"
	default:
		return "Start"
	}
}
