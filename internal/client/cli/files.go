package cli

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
)

// Upload prompts for a local file path and uploads it to the server.
// The content type is guessed from the file extension.
func (a *App) Upload(ctx context.Context) error {

	path, err := getSimpleText(a.reader, "Enter path to file", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := a.api.Upload(ctx, filepath.Base(path), contentType, f)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Uploaded %s (%d bytes), id: %s\n", info.OriginalFileName, info.Size, info.ID)
	return nil
}

// List prints the user's stored files, newest first.
func (a *App) List(ctx context.Context) error {

	list, err := a.api.List(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(list) == 0 {
		fmt.Println("No files")
		return nil
	}

	for _, item := range list {
		fmt.Printf("%s  %-30s  %10d  %s\n",
			item.ID, item.OriginalFileName, item.Size, item.UploadedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// Download prompts for a file id and a destination path and saves the file.
func (a *App) Download(ctx context.Context) error {

	id, err := getSimpleText(a.reader, "Enter file id to download", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	dest, err := getSimpleText(a.reader, "Enter destination path", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	f, err := os.Create(dest)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	defer f.Close()

	if err := a.api.Download(ctx, id, f); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Saved to %s\n", dest)
	return nil
}

// Delete prompts for a file id and removes the file from the server.
func (a *App) Delete(ctx context.Context) error {

	id, err := getSimpleText(a.reader, "Enter file id to delete", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.api.Delete(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println("Deleted")
	return nil
}
