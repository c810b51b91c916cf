// Package sysno defines architecture independent identifiers for Linux
// system calls.
//
// Raw system call numbers only mean something together with the ABI that
// produced them (see pkg/proc/linutil). Code that records or replays system
// calls works with the identifiers defined here instead, so that the same
// operation has the same identifier on every personality.
package sysno

//go:generate go run golang.org/x/tools/cmd/stringer -type ID -linecomment

// ID is a canonical system call identifier. The zero value, Invalid, does
// not name any system call.
type ID uint16

const (
	Invalid ID = iota // invalid

	Read                // read
	Write               // write
	Open                // open
	Close               // close
	Newstat             // newstat
	Newfstat            // newfstat
	Newlstat            // newlstat
	Poll                // poll
	Lseek               // lseek
	Mmap                // mmap
	Mprotect            // mprotect
	Munmap              // munmap
	Brk                 // brk
	RtSigaction         // rt_sigaction
	RtSigprocmask       // rt_sigprocmask
	RtSigreturn         // rt_sigreturn
	Ioctl               // ioctl
	Pread64             // pread64
	Pwrite64            // pwrite64
	Readv               // readv
	Writev              // writev
	Access              // access
	Pipe                // pipe
	Select              // select
	SchedYield          // sched_yield
	Mremap              // mremap
	Msync               // msync
	Mincore             // mincore
	Madvise             // madvise
	Shmget              // shmget
	Shmat               // shmat
	Shmctl              // shmctl
	Dup                 // dup
	Dup2                // dup2
	Pause               // pause
	Nanosleep           // nanosleep
	Getitimer           // getitimer
	Alarm               // alarm
	Setitimer           // setitimer
	Getpid              // getpid
	Sendfile64          // sendfile64
	Socket              // socket
	Connect             // connect
	Accept              // accept
	Sendto              // sendto
	Recvfrom            // recvfrom
	Sendmsg             // sendmsg
	Recvmsg             // recvmsg
	Shutdown            // shutdown
	Bind                // bind
	Listen              // listen
	Getsockname         // getsockname
	Getpeername         // getpeername
	Socketpair          // socketpair
	Setsockopt          // setsockopt
	Getsockopt          // getsockopt
	Clone               // clone
	Fork                // fork
	Vfork               // vfork
	Execve              // execve
	Exit                // exit
	Wait4               // wait4
	Kill                // kill
	Uname               // uname
	Semget              // semget
	Semop               // semop
	Semctl              // semctl
	Shmdt               // shmdt
	Msgget              // msgget
	Msgsnd              // msgsnd
	Msgrcv              // msgrcv
	Msgctl              // msgctl
	Fcntl               // fcntl
	Flock               // flock
	Fsync               // fsync
	Fdatasync           // fdatasync
	Truncate            // truncate
	Ftruncate           // ftruncate
	Getdents            // getdents
	Getcwd              // getcwd
	Chdir               // chdir
	Fchdir              // fchdir
	Rename              // rename
	Mkdir               // mkdir
	Rmdir               // rmdir
	Creat               // creat
	Link                // link
	Unlink              // unlink
	Symlink             // symlink
	Readlink            // readlink
	Chmod               // chmod
	Fchmod              // fchmod
	Chown               // chown
	Fchown              // fchown
	Lchown              // lchown
	Umask               // umask
	Gettimeofday        // gettimeofday
	Getrlimit           // getrlimit
	Getrusage           // getrusage
	Sysinfo             // sysinfo
	Times               // times
	Ptrace              // ptrace
	Getuid              // getuid
	Syslog              // syslog
	Getgid              // getgid
	Setuid              // setuid
	Setgid              // setgid
	Geteuid             // geteuid
	Getegid             // getegid
	Setpgid             // setpgid
	Getppid             // getppid
	Getpgrp             // getpgrp
	Setsid              // setsid
	Setreuid            // setreuid
	Setregid            // setregid
	Getgroups           // getgroups
	Setgroups           // setgroups
	Setresuid           // setresuid
	Getresuid           // getresuid
	Setresgid           // setresgid
	Getresgid           // getresgid
	Getpgid             // getpgid
	Setfsuid            // setfsuid
	Setfsgid            // setfsgid
	Getsid              // getsid
	Capget              // capget
	Capset              // capset
	RtSigpending        // rt_sigpending
	RtSigtimedwait      // rt_sigtimedwait
	RtSigqueueinfo      // rt_sigqueueinfo
	RtSigsuspend        // rt_sigsuspend
	Sigaltstack         // sigaltstack
	Utime               // utime
	Mknod               // mknod
	Personality         // personality
	Ustat               // ustat
	Statfs              // statfs
	Fstatfs             // fstatfs
	Sysfs               // sysfs
	Getpriority         // getpriority
	Setpriority         // setpriority
	SchedSetparam       // sched_setparam
	SchedGetparam       // sched_getparam
	SchedSetscheduler   // sched_setscheduler
	SchedGetscheduler   // sched_getscheduler
	SchedGetPriorityMax // sched_get_priority_max
	SchedGetPriorityMin // sched_get_priority_min
	SchedRrGetInterval  // sched_rr_get_interval
	Mlock               // mlock
	Munlock             // munlock
	Mlockall            // mlockall
	Munlockall          // munlockall
	Vhangup             // vhangup
	ModifyLdt           // modify_ldt
	PivotRoot           // pivot_root
	Sysctl              // sysctl
	Prctl               // prctl
	ArchPrctl           // arch_prctl
	Adjtimex            // adjtimex
	Setrlimit           // setrlimit
	Chroot              // chroot
	Sync                // sync
	Acct                // acct
	Settimeofday        // settimeofday
	Mount               // mount
	Umount              // umount
	Swapon              // swapon
	Swapoff             // swapoff
	Reboot              // reboot
	Sethostname         // sethostname
	Setdomainname       // setdomainname
	Iopl                // iopl
	Ioperm              // ioperm
	InitModule          // init_module
	DeleteModule        // delete_module
	Quotactl            // quotactl
	Nfsservctl          // nfsservctl
	Gettid              // gettid
	Readahead           // readahead
	Setxattr            // setxattr
	Lsetxattr           // lsetxattr
	Fsetxattr           // fsetxattr
	Getxattr            // getxattr
	Lgetxattr           // lgetxattr
	Fgetxattr           // fgetxattr
	Listxattr           // listxattr
	Llistxattr          // llistxattr
	Flistxattr          // flistxattr
	Removexattr         // removexattr
	Lremovexattr        // lremovexattr
	Fremovexattr        // fremovexattr
	Tkill               // tkill
	Time                // time
	Futex               // futex
	SchedSetaffinity    // sched_setaffinity
	SchedGetaffinity    // sched_getaffinity
	IoSetup             // io_setup
	IoDestroy           // io_destroy
	IoGetevents         // io_getevents
	IoSubmit            // io_submit
	IoCancel            // io_cancel
	LookupDcookie       // lookup_dcookie
	EpollCreate         // epoll_create
	RemapFilePages      // remap_file_pages
	Getdents64          // getdents64
	SetTidAddress       // set_tid_address
	RestartSyscall      // restart_syscall
	Semtimedop          // semtimedop
	Fadvise64           // fadvise64
	TimerCreate         // timer_create
	TimerSettime        // timer_settime
	TimerGettime        // timer_gettime
	TimerGetoverrun     // timer_getoverrun
	TimerDelete         // timer_delete
	ClockSettime        // clock_settime
	ClockGettime        // clock_gettime
	ClockGetres         // clock_getres
	ClockNanosleep      // clock_nanosleep
	ExitGroup           // exit_group
	EpollWait           // epoll_wait
	EpollCtl            // epoll_ctl
	Tgkill              // tgkill
	Utimes              // utimes
	Mbind               // mbind
	SetMempolicy        // set_mempolicy
	GetMempolicy        // get_mempolicy
	MqOpen              // mq_open
	MqUnlink            // mq_unlink
	MqTimedsend         // mq_timedsend
	MqTimedreceive      // mq_timedreceive
	MqNotify            // mq_notify
	MqGetsetattr        // mq_getsetattr
	KexecLoad           // kexec_load
	Waitid              // waitid
	AddKey              // add_key
	RequestKey          // request_key
	Keyctl              // keyctl
	IoprioSet           // ioprio_set
	IoprioGet           // ioprio_get
	InotifyInit         // inotify_init
	InotifyAddWatch     // inotify_add_watch
	InotifyRmWatch      // inotify_rm_watch
	MigratePages        // migrate_pages
	Openat              // openat
	Mkdirat             // mkdirat
	Mknodat             // mknodat
	Fchownat            // fchownat
	Futimesat           // futimesat
	Newfstatat          // newfstatat
	Unlinkat            // unlinkat
	Renameat            // renameat
	Linkat              // linkat
	Symlinkat           // symlinkat
	Readlinkat          // readlinkat
	Fchmodat            // fchmodat
	Faccessat           // faccessat
	Pselect6            // pselect6
	Ppoll               // ppoll
	Unshare             // unshare
	SetRobustList       // set_robust_list
	GetRobustList       // get_robust_list
	Splice              // splice
	Tee                 // tee
	SyncFileRange       // sync_file_range
	Vmsplice            // vmsplice
	MovePages           // move_pages
	Pipe2               // pipe2
	Getrandom           // getrandom

	// The following are only reachable through the x32 personality on amd64.
	Preadv           // preadv
	Pwritev          // pwritev
	RtTgsigqueueinfo // rt_tgsigqueueinfo
	Recvmmsg         // recvmmsg
	Sendmmsg         // sendmmsg
	ProcessVmReadv   // process_vm_readv
	ProcessVmWritev  // process_vm_writev
)

// numIDs is one past the last valid identifier.
const numIDs = int(ProcessVmWritev) + 1

// Valid reports whether id names a system call.
func (id ID) Valid() bool {
	return id > Invalid && int(id) < numIDs
}

// All returns every valid identifier in declaration order.
func All() []ID {
	r := make([]ID, 0, numIDs-1)
	for id := Invalid + 1; int(id) < numIDs; id++ {
		r = append(r, id)
	}
	return r
}
